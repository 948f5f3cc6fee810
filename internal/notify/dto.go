package notify

import (
	"encoding/json"
	"time"

	"cloud-savings/internal/savings"
)

// NotifyRequest is a resource configuration plus the address to email.
type NotifyRequest struct {
	savings.ConfigRequest
	Recipient string `json:"recipient"`
}

// DeliveryResponse is the outward-facing representation of a delivery attempt.
type DeliveryResponse struct {
	DeliveryID          string      `json:"deliveryId"`
	Recipient           string      `json:"recipient"`
	ServiceType         string      `json:"serviceType"`
	RecommendationCount int         `json:"recommendationCount"`
	PotentialSavings    json.Number `json:"potentialSavings"`
	Status              string      `json:"status"`
	Error               string      `json:"error,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
}

func toDeliveryResponse(d Delivery) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:          d.ID,
		Recipient:           d.Recipient,
		ServiceType:         d.ServiceType,
		RecommendationCount: d.RecommendationCount,
		PotentialSavings:    savings.Money(d.PotentialSavings),
		Status:              d.Status,
		Error:               d.Error,
		CreatedAt:           d.CreatedAt,
	}
}
