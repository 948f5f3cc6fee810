package notify

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cloud-savings/internal/savings"
)

func TestFormat(t *testing.T) {
	res := savings.Result{
		Recommendations:  []string{savings.RecStorageGlacierArchive, savings.RecStorageTiering},
		PotentialSavings: decimal.RequireFromString("600"),
	}
	msg := Format(res)
	if msg.Subject != "Cloud Cost Savings Recommendations" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	want := "Recommendations: " + savings.RecStorageGlacierArchive + ", " + savings.RecStorageTiering + "\nPotential Savings: $600.00"
	if msg.Body != want {
		t.Fatalf("unexpected body:\n%s\nwant:\n%s", msg.Body, want)
	}
}

func TestFormatWithoutRecommendations(t *testing.T) {
	msg := Format(savings.Result{PotentialSavings: decimal.RequireFromString("0.006")})
	if msg.Body != "Recommendations: \nPotential Savings: $0.01" {
		t.Fatalf("unexpected body %q", msg.Body)
	}
}

func TestValidateRecipient(t *testing.T) {
	valid := []string{"ops@example.com", "  finance@example.co.uk "}
	for _, raw := range valid {
		if _, err := ValidateRecipient(raw); err != nil {
			t.Fatalf("expected %q to be valid, got %v", raw, err)
		}
	}
	invalid := []string{"", "   ", "not-an-email", "Ops <ops@example.com>", "a@b@c"}
	for _, raw := range invalid {
		if _, err := ValidateRecipient(raw); !errors.Is(err, ErrInvalidRecipient) {
			t.Fatalf("expected %q to be rejected, got %v", raw, err)
		}
	}
}
