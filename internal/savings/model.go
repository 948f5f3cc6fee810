package savings

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceType is the cloud service under analysis.
type ServiceType string

const (
	ServiceCompute  ServiceType = "Compute"
	ServiceStorage  ServiceType = "Storage"
	ServiceDatabase ServiceType = "Database"
)

// ServiceTypes lists the services in display order.
var ServiceTypes = []ServiceType{ServiceCompute, ServiceStorage, ServiceDatabase}

var serviceLabels = map[ServiceType]string{
	ServiceCompute:  "Compute (EC2)",
	ServiceStorage:  "Storage (S3)",
	ServiceDatabase: "Database (RDS)",
}

var serviceAliases = map[string]ServiceType{
	"compute":        ServiceCompute,
	"compute (ec2)":  ServiceCompute,
	"ec2":            ServiceCompute,
	"storage":        ServiceStorage,
	"storage (s3)":   ServiceStorage,
	"s3":             ServiceStorage,
	"database":       ServiceDatabase,
	"database (rds)": ServiceDatabase,
	"rds":            ServiceDatabase,
}

// Label is the dashboard name, e.g. "Compute (EC2)".
func (s ServiceType) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseServiceType accepts the short name, the dashboard label or the AWS product name.
func ParseServiceType(raw string) (ServiceType, error) {
	if st, ok := serviceAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, raw)
}

// BillingFrequency is how the resource is billed.
type BillingFrequency string

const (
	BillingHourly  BillingFrequency = "Hourly"
	BillingMonthly BillingFrequency = "Monthly"
)

// ParseBillingFrequency matches Hourly or Monthly case-insensitively.
func ParseBillingFrequency(raw string) (BillingFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hourly":
		return BillingHourly, nil
	case "monthly":
		return BillingMonthly, nil
	}
	return "", fmt.Errorf("%w: unknown billing frequency %q", ErrInvalidInput, raw)
}

// ResourceConfig describes one resource as entered by the operator.
type ResourceConfig struct {
	ServiceType      ServiceType      `json:"serviceType"`
	InstanceType     string           `json:"instanceType,omitempty"`
	Utilization      int              `json:"utilization"`
	BillingFrequency BillingFrequency `json:"billingFrequency"`
	CurrentCost      decimal.Decimal  `json:"currentCost"`
}

// Validate checks ranges and that the instance type belongs to the service's catalog.
// Storage ignores the instance type.
func (c ResourceConfig) Validate() error {
	if _, ok := serviceLabels[c.ServiceType]; !ok {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, c.ServiceType)
	}
	if c.Utilization < 0 || c.Utilization > 100 {
		return fmt.Errorf("%w: utilization must be between 0 and 100", ErrInvalidInput)
	}
	if c.BillingFrequency != BillingHourly && c.BillingFrequency != BillingMonthly {
		return fmt.Errorf("%w: unknown billing frequency %q", ErrInvalidInput, c.BillingFrequency)
	}
	if c.CurrentCost.IsNegative() {
		return fmt.Errorf("%w: current cost must not be negative", ErrInvalidInput)
	}
	if c.InstanceType != "" && c.ServiceType != ServiceStorage && !ValidInstance(c.ServiceType, c.InstanceType) {
		return fmt.Errorf("%w: instance type %q is not offered for %s", ErrInvalidInput, c.InstanceType, c.ServiceType.Label())
	}
	return nil
}

// Result is the rule engine output.
type Result struct {
	Recommendations  []string        `json:"recommendations"`
	PotentialSavings decimal.Decimal `json:"potentialSavings"`
}

// Comparison is the before/after view of a resource's cost.
type Comparison struct {
	CurrentCost   decimal.Decimal `json:"currentCost"`
	OptimizedCost decimal.Decimal `json:"optimizedCost"`
}
