package notify

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Delivery records one attempt to email recommendations.
type Delivery struct {
	ID                  string
	Recipient           string
	ServiceType         string
	RecommendationCount int
	PotentialSavings    decimal.Decimal
	Status              string
	Error               string
	CreatedAt           time.Time
}
