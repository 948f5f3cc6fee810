package health

import (
	"context"
	"database/sql"
	"time"

	"cloud-savings/internal/shared/storage/db"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDisabled = "disabled"
)

// SessionCounter reports the number of live dashboard sessions.
type SessionCounter interface {
	Len() int
}

// Service encapsulates health-related checks.
type Service struct {
	DB             *sql.DB
	Sessions       SessionCounter
	MailConfigured bool
	EventsEnabled  bool
	CRMEnabled     bool
	ArchiveEnabled bool
}

// Report is the health payload.
type Report struct {
	OK         bool              `json:"ok"`
	Components map[string]string `json:"components"`
	Sessions   int               `json:"sessions"`
}

// Status reports liveness plus the state of optional integrations. Only a failing
// database makes the service unhealthy; missing integrations are "disabled".
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Components: map[string]string{
		"database": StatusDisabled,
		"mail":     enabled(s.MailConfigured),
		"events":   enabled(s.EventsEnabled),
		"crm":      enabled(s.CRMEnabled),
		"archive":  enabled(s.ArchiveEnabled),
	}}
	if s.DB != nil {
		report.Components["database"] = StatusOK
		if err := db.Ping(ctx, s.DB, 2*time.Second); err != nil {
			report.Components["database"] = StatusDegraded
			report.OK = false
		}
	}
	if s.Sessions != nil {
		report.Sessions = s.Sessions.Len()
	}
	return report
}

func enabled(on bool) string {
	if on {
		return StatusOK
	}
	return StatusDisabled
}
