package leads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud-savings/internal/events"
	"cloud-savings/internal/shared/metrics"
	"cloud-savings/internal/shared/storage/object"
	"cloud-savings/internal/shared/telemetry"
)

// Sink receives prioritized leads, e.g. a CRM webhook.
type Sink interface {
	SendLeads(ctx context.Context, leads []Record) error
}

// Service runs the lead pipeline against a session's collection.
type Service struct {
	Sessions SessionStore
	Events   events.Publisher
	Sink     Sink
	Archive  object.Store
	TopN     int
	Now      func() time.Time
}

// ScoredEvent is published whenever a collection changes.
type ScoredEvent struct {
	SessionID    string  `json:"sessionId"`
	TotalLeads   int     `json:"totalLeads"`
	AverageScore float64 `json:"averageScore"`
	Source       string  `json:"source"`
}

// SyncedEvent is published after leads are pushed to the sink.
type SyncedEvent struct {
	SessionID string   `json:"sessionId"`
	Companies []string `json:"companies"`
}

// Upload decodes a CSV and replaces the session's collection. On a decode error the
// existing collection is left as it was.
func (s *Service) Upload(ctx context.Context, sessionID string, r io.Reader) ([]Record, error) {
	coll, err := s.collection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records, err := DecodeCSV(r)
	if err != nil {
		return nil, err
	}
	scored := coll.Replace(records)
	metrics.AddLeadsUploaded(len(scored))
	s.publishScored(ctx, sessionID, scored, "upload")
	return scored, nil
}

// Add appends one lead to the session's collection.
func (s *Service) Add(ctx context.Context, sessionID string, rec Record) (Record, error) {
	coll, err := s.collection(ctx, sessionID)
	if err != nil {
		return Record{}, err
	}
	scored := coll.Add(rec)
	metrics.IncLeadsAdded()
	s.publishScored(ctx, sessionID, coll.Get(), "manual")
	return scored, nil
}

// List returns the scored collection in insertion order.
func (s *Service) List(ctx context.Context, sessionID string) ([]Record, error) {
	coll, err := s.collection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return coll.Get(), nil
}

// Top returns the n best leads; n <= 0 uses the configured default.
func (s *Service) Top(ctx context.Context, sessionID string, n int) ([]Record, error) {
	records, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Top(records, s.topN(n)), nil
}

// Summary returns the headline numbers.
func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	records, err := s.List(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}

// Charts returns the data behind the report charts.
func (s *Service) Charts(ctx context.Context, sessionID string) (Charts, error) {
	records, err := s.List(ctx, sessionID)
	if err != nil {
		return Charts{}, err
	}
	return BuildCharts(records), nil
}

// Export encodes the collection as CSV. When an archive is configured a copy is kept
// there; archive failures are logged and do not fail the export.
func (s *Service) Export(ctx context.Context, sessionID string) ([]byte, error) {
	records, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, records); err != nil {
		return nil, err
	}
	metrics.IncLeadsExported()
	s.archive(ctx, sessionID, buf.Bytes())
	return buf.Bytes(), nil
}

func (s *Service) archive(ctx context.Context, sessionID string, data []byte) {
	if s.Archive == nil {
		return
	}
	key, err := object.ExportKey(sessionID, ExportFileName, s.now())
	if err == nil {
		_, err = s.Archive.Put(ctx, key, ExportContentType, bytes.NewReader(data))
	}
	if err != nil {
		telemetry.Warn("leads.archive_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}
	telemetry.Info("leads.archived", map[string]any{
		"session_id": sessionID,
		"key":        key,
		"bytes":      len(data),
	})
}

// Sync pushes the top leads to the configured sink and returns what was sent.
func (s *Service) Sync(ctx context.Context, sessionID string, n int) ([]Record, error) {
	if s.Sink == nil {
		return nil, ErrSyncNotConfigured
	}
	top, err := s.Top(ctx, sessionID, n)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, ErrNoLeads
	}
	if err := s.Sink.SendLeads(ctx, top); err != nil {
		telemetry.Warn("leads.sync_failed", map[string]any{
			"session_id": sessionID,
			"count":      len(top),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	metrics.AddLeadsSynced(len(top))
	companies := make([]string, len(top))
	for i, r := range top {
		companies[i] = r.CompanyName
	}
	s.publish(ctx, events.TypeLeadsSynced, SyncedEvent{SessionID: sessionID, Companies: companies})
	return top, nil
}

func (s *Service) collection(ctx context.Context, sessionID string) (*Collection, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.Sessions.Collection(ctx, sessionID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) topN(n int) int {
	if n > 0 {
		return n
	}
	if s.TopN > 0 {
		return s.TopN
	}
	return DefaultTopN
}

func (s *Service) publishScored(ctx context.Context, sessionID string, records []Record, source string) {
	summary := Summarize(records)
	s.publish(ctx, events.TypeLeadsScored, ScoredEvent{
		SessionID:    sessionID,
		TotalLeads:   summary.TotalLeads,
		AverageScore: summary.AverageScore,
		Source:       source,
	})
}

// publish is best-effort; a broker outage never fails the request.
func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, eventType, payload); err != nil {
		telemetry.Warn("events.publish_failed", map[string]any{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
