package notify

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"cloud-savings/internal/shared/config"
)

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends through an SMTP relay over implicit TLS with PLAIN auth.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer returns ErrMailNotConfigured unless host, sender and credentials are set.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if !cfg.Configured() {
		return nil, ErrMailNotConfigured
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send dials the relay, authenticates and delivers msg. A connection is opened per message.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := gomail.NewMsg()
	if err := out.From(m.cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, out)
}
