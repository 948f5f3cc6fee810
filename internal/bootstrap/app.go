package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/charts"
	"cloud-savings/internal/crm"
	"cloud-savings/internal/events"
	"cloud-savings/internal/leads"
	"cloud-savings/internal/notify"
	"cloud-savings/internal/savings"
	"cloud-savings/internal/services/health"
	"cloud-savings/internal/shared/config"
	"cloud-savings/internal/shared/server"
	"cloud-savings/internal/shared/server/middleware"
	"cloud-savings/internal/shared/storage/db"
	"cloud-savings/internal/shared/storage/object"
	"cloud-savings/internal/shared/storage/object/local"
	"cloud-savings/internal/shared/storage/object/s3"
	"cloud-savings/internal/shared/telemetry"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Events         events.Publisher
	Archive        object.Store
	Sessions       *leads.MemorySessionStore
	Limiter        *middleware.RateLimiter
	DeliveryRepo   notify.Repo
	LeadsService   *leads.Service
	SavingsService *savings.Service
	NotifyService  *notify.Service
	LeadsHandler   *leads.Handler
	SavingsHandler *savings.Handler
	NotifyHandler  *notify.Handler
	Health         *health.Service
}

// Build prepares dependencies and wires routes. Optional integrations (Postgres, NATS,
// SQS, SMTP, CRM, export archive) are enabled only when configured.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.LogLevel != "" {
		telemetry.SetLevel(cfg.LogLevel)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := buildEvents(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		publisher.Close()
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Events:   publisher,
		Archive:  archive,
		Sessions: leads.NewMemorySessionStore(cfg.SessionTTL, nil),
		Limiter:  middleware.NewRateLimiter(nil),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Health:         app.Health,
		LeadsHandler:   app.LeadsHandler,
		SavingsHandler: app.SavingsHandler,
		NotifyHandler:  app.NotifyHandler,
	})

	return app, nil
}

// Close releases the broker connection and the database pool.
func (a *App) Close() {
	if a.Events != nil {
		a.Events.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildEvents(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	var pubs events.Multi
	if strings.TrimSpace(cfg.NATSURL) != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		switch {
		case err == nil:
			pubs = append(pubs, pub)
		case isDevLike(cfg.Env):
			telemetry.Warn("bootstrap.events_disabled", map[string]any{"backend": "nats", "error": err.Error()})
		default:
			pubs.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
	}
	if strings.TrimSpace(cfg.SQSQueueURL) != "" {
		pub, err := events.NewSQSPublisher(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
		switch {
		case err == nil:
			pubs = append(pubs, pub)
		case isDevLike(cfg.Env):
			telemetry.Warn("bootstrap.events_disabled", map[string]any{"backend": "sqs", "error": err.Error()})
		default:
			pubs.Close()
			return nil, fmt.Errorf("init sqs: %w", err)
		}
	}
	switch len(pubs) {
	case 0:
		return events.Nop{}, nil
	case 1:
		return pubs[0], nil
	default:
		return pubs, nil
	}
}

func buildArchive(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch {
	case strings.TrimSpace(cfg.Archive.Bucket) != "":
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.Archive.Bucket, cfg.Archive.Prefix, cfg.Archive.KMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("init export archive: %w", err)
		}
		return store, nil
	case strings.TrimSpace(cfg.Archive.Dir) != "":
		return local.New(cfg.Archive.Dir), nil
	default:
		return nil, nil
	}
}

func buildServices(app *App) {
	cfg := app.Config

	if app.DB != nil {
		app.DeliveryRepo = &notify.PGRepo{DB: app.DB}
	} else {
		app.DeliveryRepo = notify.NewMemoryRepo()
	}

	var sender notify.Sender
	if mailer, err := notify.NewSMTPMailer(cfg.Mail); err == nil {
		sender = mailer
	} else {
		telemetry.Warn("bootstrap.mail_disabled", map[string]any{"reason": err.Error()})
	}

	var sink leads.Sink
	if strings.TrimSpace(cfg.CRMWebhookURL) != "" {
		sink = crm.NewClient(cfg.CRMWebhookURL, cfg.CRMAPIKey)
	}

	renderer := charts.NewRenderer("")

	app.LeadsService = &leads.Service{
		Sessions: app.Sessions,
		Events:   app.Events,
		Sink:     sink,
		Archive:  app.Archive,
		TopN:     cfg.TopLeadsLimit,
	}
	app.SavingsService = &savings.Service{Events: app.Events}
	app.NotifyService = &notify.Service{
		Sender: sender,
		Repo:   app.DeliveryRepo,
		Events: app.Events,
	}

	limit := middleware.RateLimit("notify", middleware.RateLimitRule{
		Rate:  cfg.NotifyRate,
		Burst: cfg.NotifyBurst,
	}, app.Limiter)

	app.LeadsHandler = leads.NewHandler(app.LeadsService, renderer)
	app.SavingsHandler = savings.NewHandler(app.SavingsService, renderer)
	app.NotifyHandler = notify.NewHandler(app.NotifyService, app.SavingsService, limit)

	_, eventsOff := app.Events.(events.Nop)
	app.Health = &health.Service{
		DB:             app.DB,
		Sessions:       app.Sessions,
		MailConfigured: sender != nil,
		EventsEnabled:  !eventsOff,
		CRMEnabled:     sink != nil,
		ArchiveEnabled: app.Archive != nil,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
