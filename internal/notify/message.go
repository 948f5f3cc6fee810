package notify

import (
	"fmt"
	"net/mail"
	"strings"

	"cloud-savings/internal/savings"
)

// Subject is used for every recommendation email.
const Subject = "Cloud Cost Savings Recommendations"

// Message is a plain-text email to a single recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Format renders the recommendation email without a recipient.
func Format(res savings.Result) Message {
	return Message{
		Subject: Subject,
		Body: fmt.Sprintf("Recommendations: %s\nPotential Savings: $%s",
			strings.Join(res.Recommendations, ", "),
			res.PotentialSavings.StringFixed(2)),
	}
}

// Compose addresses a formatted message to recipient.
func Compose(recipient string, res savings.Result) Message {
	msg := Format(res)
	msg.To = recipient
	return msg
}

// ValidateRecipient accepts one bare address such as "ops@example.com".
func ValidateRecipient(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidRecipient
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidRecipient
	}
	return addr.Address, nil
}
