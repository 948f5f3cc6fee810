// Package events publishes domain events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Event types.
const (
	TypeLeadsScored     = "leads.scored"
	TypeLeadsSynced     = "leads.synced"
	TypeSavingsAnalyzed = "savings.analyzed"
	TypeSavingsNotified = "savings.notified"
)

// Publisher emits events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close()
}

// Envelope is the wire format of every event.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close()                                     {}

// NATSPublisher publishes envelopes to "<prefix>.<type>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	now    func() time.Time
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("nats url is required")
	}
	conn, err := nats.Connect(url,
		nats.Name("cloud-savings"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn, prefix: strings.Trim(prefix, "."), now: time.Now}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(eventType string) string {
	return Subject(p.prefix, eventType)
}

// Publish marshals the envelope and hands it to the connection.
func (p *NATSPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(eventType, payload, p.now())
	if err != nil {
		return err
	}
	return p.conn.Publish(p.Subject(eventType), data)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}

// Subject joins prefix and event type with a dot.
func Subject(prefix, eventType string) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// Marshal encodes an envelope.
func Marshal(eventType string, payload any, at time.Time) ([]byte, error) {
	return json.Marshal(Envelope{Type: eventType, OccurredAt: at.UTC(), Payload: payload})
}
