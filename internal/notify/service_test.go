package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cloud-savings/internal/savings"
	"cloud-savings/internal/shared/config"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func storageConfig() (savings.ResourceConfig, savings.Result) {
	cfg := savings.ResourceConfig{
		ServiceType:      savings.ServiceStorage,
		Utilization:      15,
		BillingFrequency: savings.BillingHourly,
		CurrentCost:      decimal.RequireFromString("1000"),
	}
	return cfg, savings.Analyze(cfg)
}

func TestNotifySuccessRecordsDelivery(t *testing.T) {
	sender := &fakeSender{}
	repo := NewMemoryRepo()
	svc := &Service{Sender: sender, Repo: repo}
	cfg, res := storageConfig()

	delivery, err := svc.Notify(context.Background(), " ops@example.com ", cfg, res)
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if delivery.Status != StatusSent || delivery.RecommendationCount != 3 {
		t.Fatalf("unexpected delivery %+v", delivery)
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "ops@example.com" || sender.sent[0].Subject != Subject {
		t.Fatalf("unexpected sent messages %+v", sender.sent)
	}
	list, _ := repo.ListRecent(context.Background(), 10)
	if len(list) != 1 || list[0].ID != delivery.ID {
		t.Fatalf("expected the delivery to be recorded, got %+v", list)
	}
}

func TestNotifyFailureIsRecordedWithoutRetry(t *testing.T) {
	sender := &fakeSender{err: errors.New("535 authentication failed")}
	repo := NewMemoryRepo()
	svc := &Service{Sender: sender, Repo: repo}
	cfg, res := storageConfig()

	delivery, err := svc.Notify(context.Background(), "ops@example.com", cfg, res)
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("expected ErrSendFailed, got %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", len(sender.sent))
	}
	if delivery.Status != StatusFailed || delivery.Error != "535 authentication failed" {
		t.Fatalf("unexpected delivery %+v", delivery)
	}
	list, _ := repo.ListRecent(context.Background(), 10)
	if len(list) != 1 || list[0].Status != StatusFailed {
		t.Fatalf("expected a failed delivery to be recorded, got %+v", list)
	}
}

func TestNotifyRejectsInvalidRecipient(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender, Repo: NewMemoryRepo()}
	cfg, res := storageConfig()
	if _, err := svc.Notify(context.Background(), "", cfg, res); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("nothing should be sent for an invalid recipient")
	}
}

func TestNotifyWithoutSender(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	cfg, res := storageConfig()
	if _, err := svc.Notify(context.Background(), "ops@example.com", cfg, res); !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}
}

func TestNewSMTPMailerRequiresCredentials(t *testing.T) {
	cfg := config.Defaults().Mail
	if _, err := NewSMTPMailer(cfg); !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}
	cfg.From = "alerts@example.com"
	cfg.Username = "alerts@example.com"
	cfg.Password = "app-password"
	if _, err := NewSMTPMailer(cfg); err != nil {
		t.Fatalf("expected mailer, got %v", err)
	}
}

func TestMemoryRepoListRecent(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		d := Delivery{ID: string(rune('a' + i)), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(context.Background(), d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, err := repo.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Fatalf("unexpected order %+v", list)
	}
}
