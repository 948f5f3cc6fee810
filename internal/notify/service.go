package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cloud-savings/internal/events"
	"cloud-savings/internal/savings"
	"cloud-savings/internal/shared/metrics"
	"cloud-savings/internal/shared/telemetry"
)

const defaultListLimit = 20

// Service emails recommendations and records each attempt.
type Service struct {
	Sender Sender
	Repo   Repo
	Events events.Publisher
	Now    func() time.Time
}

// NotifiedEvent is published after a successful delivery.
type NotifiedEvent struct {
	DeliveryID       string `json:"deliveryId"`
	ServiceType      string `json:"serviceType"`
	PotentialSavings string `json:"potentialSavings"`
}

// Notify sends the recommendation email once. A failed send is recorded and returned
// wrapped in ErrSendFailed together with the failed delivery; there is no retry.
func (s *Service) Notify(ctx context.Context, recipient string, cfg savings.ResourceConfig, res savings.Result) (Delivery, error) {
	to, err := ValidateRecipient(recipient)
	if err != nil {
		return Delivery{}, err
	}
	if s.Sender == nil {
		return Delivery{}, ErrMailNotConfigured
	}

	start := s.now()
	sendErr := s.Sender.Send(ctx, Compose(to, res))
	metrics.ObserveMailSendMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)

	delivery := Delivery{
		ID:                  uuid.NewString(),
		Recipient:           to,
		ServiceType:         string(cfg.ServiceType),
		RecommendationCount: len(res.Recommendations),
		PotentialSavings:    res.PotentialSavings,
		Status:              StatusSent,
		CreatedAt:           start.UTC(),
	}
	if sendErr != nil {
		delivery.Status = StatusFailed
		delivery.Error = sendErr.Error()
	}
	s.record(ctx, delivery)

	if sendErr != nil {
		metrics.IncNotificationFailed()
		telemetry.Error("notify.send_failed", map[string]any{
			"delivery_id":  delivery.ID,
			"service_type": delivery.ServiceType,
			"error":        sendErr.Error(),
		})
		return delivery, fmt.Errorf("%w: %v", ErrSendFailed, sendErr)
	}

	metrics.IncNotificationSent()
	telemetry.Info("notify.sent", map[string]any{
		"delivery_id":          delivery.ID,
		"service_type":         delivery.ServiceType,
		"recommendation_count": delivery.RecommendationCount,
	})
	if s.Events != nil {
		err := s.Events.Publish(ctx, events.TypeSavingsNotified, NotifiedEvent{
			DeliveryID:       delivery.ID,
			ServiceType:      delivery.ServiceType,
			PotentialSavings: delivery.PotentialSavings.StringFixed(2),
		})
		if err != nil {
			telemetry.Warn("events.publish_failed", map[string]any{
				"type":  events.TypeSavingsNotified,
				"error": err.Error(),
			})
		}
	}
	return delivery, nil
}

// Recent lists the latest delivery attempts; limit <= 0 uses the default.
func (s *Service) Recent(ctx context.Context, limit int) ([]Delivery, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListRecent(ctx, limit)
}

// record never masks the send outcome; a storage error is only logged.
func (s *Service) record(ctx context.Context, d Delivery) {
	if s.Repo == nil {
		return
	}
	if err := s.Repo.Create(context.WithoutCancel(ctx), d); err != nil {
		telemetry.Error("notify.record_failed", map[string]any{
			"delivery_id": d.ID,
			"error":       err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
