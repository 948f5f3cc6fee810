package savings

import (
	"context"

	"cloud-savings/internal/events"
	"cloud-savings/internal/shared/metrics"
	"cloud-savings/internal/shared/telemetry"
)

// Service runs the savings advisor.
type Service struct {
	Events events.Publisher
}

// AnalyzedEvent is published for every analysis.
type AnalyzedEvent struct {
	ServiceType         ServiceType `json:"serviceType"`
	InstanceType        string      `json:"instanceType,omitempty"`
	Utilization         int         `json:"utilization"`
	BillingFrequency    string      `json:"billingFrequency"`
	RecommendationCount int         `json:"recommendationCount"`
	CurrentCost         string      `json:"currentCost"`
	PotentialSavings    string      `json:"potentialSavings"`
}

// Analyze validates cfg and runs the rule engine.
func (s *Service) Analyze(ctx context.Context, cfg ResourceConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	res := Analyze(cfg)
	metrics.IncSavingsAnalysis(string(cfg.ServiceType))
	telemetry.Info("savings.analyzed", map[string]any{
		"service_type":         string(cfg.ServiceType),
		"instance_type":        cfg.InstanceType,
		"recommendation_count": len(res.Recommendations),
		"potential_savings":    res.PotentialSavings.StringFixed(2),
	})
	if s.Events != nil {
		err := s.Events.Publish(ctx, events.TypeSavingsAnalyzed, AnalyzedEvent{
			ServiceType:         cfg.ServiceType,
			InstanceType:        cfg.InstanceType,
			Utilization:         cfg.Utilization,
			BillingFrequency:    string(cfg.BillingFrequency),
			RecommendationCount: len(res.Recommendations),
			CurrentCost:         cfg.CurrentCost.StringFixed(2),
			PotentialSavings:    res.PotentialSavings.StringFixed(2),
		})
		if err != nil {
			telemetry.Warn("events.publish_failed", map[string]any{
				"type":  events.TypeSavingsAnalyzed,
				"error": err.Error(),
			})
		}
	}
	return res, nil
}

// Compare validates cfg and returns the before/after costs.
func (s *Service) Compare(_ context.Context, cfg ResourceConfig) (Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return Comparison{}, err
	}
	return Compare(cfg), nil
}
