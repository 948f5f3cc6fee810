package savings

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ConfigRequest is the resource configuration as posted by the dashboard.
type ConfigRequest struct {
	ServiceType      string          `json:"serviceType" binding:"required"`
	InstanceType     string          `json:"instanceType"`
	Utilization      *int            `json:"utilization" binding:"required,min=0,max=100"`
	BillingFrequency string          `json:"billingFrequency" binding:"required"`
	CurrentCost      decimal.Decimal `json:"currentCost"`
}

// ToConfig parses the enumerations and validates the result.
func (r ConfigRequest) ToConfig() (ResourceConfig, error) {
	st, err := ParseServiceType(r.ServiceType)
	if err != nil {
		return ResourceConfig{}, err
	}
	billing, err := ParseBillingFrequency(r.BillingFrequency)
	if err != nil {
		return ResourceConfig{}, err
	}
	cfg := ResourceConfig{
		ServiceType:      st,
		InstanceType:     strings.TrimSpace(r.InstanceType),
		BillingFrequency: billing,
		CurrentCost:      r.CurrentCost,
	}
	if st == ServiceStorage {
		cfg.InstanceType = ""
	}
	if r.Utilization != nil {
		cfg.Utilization = *r.Utilization
	}
	if err := cfg.Validate(); err != nil {
		return ResourceConfig{}, err
	}
	return cfg, nil
}

// ResultResponse renders amounts as numbers with two decimals.
type ResultResponse struct {
	ServiceType      string      `json:"serviceType"`
	InstanceType     string      `json:"instanceType,omitempty"`
	Recommendations  []string    `json:"recommendations"`
	CurrentCost      json.Number `json:"currentCost"`
	PotentialSavings json.Number `json:"potentialSavings"`
}

// ComparisonResponse is the JSON body of the visualize route.
type ComparisonResponse struct {
	ServiceType   string      `json:"serviceType"`
	CurrentCost   json.Number `json:"currentCost"`
	OptimizedCost json.Number `json:"optimizedCost"`
}

// Money formats an amount the way reports show it.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// ToResultResponse builds the analyze response body.
func ToResultResponse(cfg ResourceConfig, res Result) ResultResponse {
	recs := res.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return ResultResponse{
		ServiceType:      cfg.ServiceType.Label(),
		InstanceType:     cfg.InstanceType,
		Recommendations:  recs,
		CurrentCost:      Money(cfg.CurrentCost),
		PotentialSavings: Money(res.PotentialSavings),
	}
}

func toComparisonResponse(cfg ResourceConfig, cmp Comparison) ComparisonResponse {
	return ComparisonResponse{
		ServiceType:   cfg.ServiceType.Label(),
		CurrentCost:   Money(cmp.CurrentCost),
		OptimizedCost: Money(cmp.OptimizedCost),
	}
}
