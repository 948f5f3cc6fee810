package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"cloud-savings/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port              string
	CORSAllowOrigin   []string
	Env               string
	LogLevel          string
	DatabaseURL       string
	SessionTTL        time.Duration
	TopLeadsLimit     int
	Mail              MailConfig
	NATSURL           string
	NATSSubjectPrefix string
	CRMWebhookURL     string
	CRMAPIKey         string
	NotifyRate        float64
	NotifyBurst       int
	AWSRegion         string
	SQSQueueURL       string
	Archive           ArchiveConfig
}

// ArchiveConfig selects where exported lead files are kept. Bucket wins over Dir;
// with neither set exports are not archived.
type ArchiveConfig struct {
	Dir      string
	Bucket   string
	Prefix   string
	KMSKeyID string
}

// MailConfig describes the outbound SMTP relay. Credentials only ever come from the environment.
type MailConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
	Timeout  time.Duration
}

// Configured reports whether enough settings are present to attempt a send.
func (m MailConfig) Configured() bool {
	return strings.TrimSpace(m.Host) != "" &&
		strings.TrimSpace(m.From) != "" &&
		strings.TrimSpace(m.Username) != "" &&
		m.Password != ""
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		LogLevel:        "info",
		SessionTTL:      2 * time.Hour,
		TopLeadsLimit:   5,
		Mail: MailConfig{
			Host:    "smtp.gmail.com",
			Port:    465,
			Timeout: 15 * time.Second,
		},
		NATSSubjectPrefix: "savings",
		NotifyRate:        0.2,
		NotifyBurst:       3,
		AWSRegion:         "us-east-1",
		Archive:           ArchiveConfig{Prefix: "exports"},
	}
}

// Load reads configuration from defaults, an optional YAML file (CONFIG_FILE) and
// environment variables, in that order of precedence.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			telemetry.Warn("config.file_ignored", map[string]any{"path": path, "error": err.Error()})
		}
	}
	applyEnv(&cfg)

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": cfg.Env})
	}
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.TopLeadsLimit = getEnvInt("TOP_LEADS_LIMIT", cfg.TopLeadsLimit)

	cfg.Mail.Host = getEnv("SMTP_HOST", cfg.Mail.Host)
	cfg.Mail.Port = getEnvInt("SMTP_PORT", cfg.Mail.Port)
	cfg.Mail.From = getEnv("SMTP_FROM", cfg.Mail.From)
	cfg.Mail.Username = getEnv("SMTP_USERNAME", cfg.Mail.Username)
	cfg.Mail.Password = getEnv("SMTP_PASSWORD", cfg.Mail.Password)
	cfg.Mail.Timeout = getEnvDuration("SMTP_TIMEOUT", cfg.Mail.Timeout)
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	cfg.NATSURL = getEnv("NATS_URL", cfg.NATSURL)
	cfg.NATSSubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", cfg.NATSSubjectPrefix)
	cfg.CRMWebhookURL = getEnv("CRM_WEBHOOK_URL", cfg.CRMWebhookURL)
	cfg.CRMAPIKey = getEnv("CRM_API_KEY", cfg.CRMAPIKey)
	cfg.NotifyRate = getEnvFloat("NOTIFY_RATE", cfg.NotifyRate)
	cfg.NotifyBurst = getEnvInt("NOTIFY_BURST", cfg.NotifyBurst)

	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.SQSQueueURL = getEnv("EVENTS_SQS_QUEUE_URL", cfg.SQSQueueURL)
	cfg.Archive.Dir = getEnv("EXPORT_ARCHIVE_DIR", cfg.Archive.Dir)
	cfg.Archive.Bucket = getEnv("EXPORT_ARCHIVE_BUCKET", cfg.Archive.Bucket)
	cfg.Archive.Prefix = getEnv("EXPORT_ARCHIVE_PREFIX", cfg.Archive.Prefix)
	cfg.Archive.KMSKeyID = getEnv("EXPORT_ARCHIVE_KMS_KEY_ID", cfg.Archive.KMSKeyID)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
