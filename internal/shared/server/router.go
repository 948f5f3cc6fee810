package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/leads"
	"cloud-savings/internal/notify"
	"cloud-savings/internal/savings"
	"cloud-savings/internal/services/health"
	"cloud-savings/internal/shared/config"
	"cloud-savings/internal/shared/metrics"
	"cloud-savings/internal/shared/server/middleware"
	"cloud-savings/internal/shared/server/respond"
)

// RouterDeps are the handlers mounted on the engine.
type RouterDeps struct {
	Config         config.Config
	Health         *health.Service
	LeadsHandler   *leads.Handler
	SavingsHandler *savings.Handler
	NotifyHandler  *notify.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.LeadsHandler != nil {
		deps.LeadsHandler.RegisterRoutes(api)
	}
	if deps.SavingsHandler != nil {
		deps.SavingsHandler.RegisterRoutes(api)
	}
	if deps.NotifyHandler != nil {
		deps.NotifyHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
