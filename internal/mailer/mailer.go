// Package mailer delivers campaign emails.
package mailer

import (
	"context"
	"fmt"

	"ugc-service/pkg/config"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Email is an outbound message
type Email struct {
	From     string
	FromName string
	To       []string
	CC       []string
	Subject  string
	Body     string
}

// Mailer sends emails
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// New returns a SendGrid mailer when an API key is configured and a log-only mailer otherwise
func New(cfg config.MailConfig, log *zap.Logger) Mailer {
	if cfg.SendGridAPIKey == "" {
		return NewLogMailer(log)
	}
	return NewSendGridMailer(cfg, sendgrid.NewSendClient(cfg.SendGridAPIKey))
}

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	client    sendClient
	fromEmail string
	fromName  string
}

// NewSendGridMailer creates a SendGridMailer over client
func NewSendGridMailer(cfg config.MailConfig, client sendClient) *SendGridMailer {
	return &SendGridMailer{client: client, fromEmail: cfg.FromEmail, fromName: cfg.FromName}
}

// Send delivers email to all of its recipients in a single personalization
func (m *SendGridMailer) Send(ctx context.Context, email Email) error {
	fromEmail, fromName := m.fromEmail, m.fromName
	if email.From != "" {
		fromEmail = email.From
	}
	if email.FromName != "" {
		fromName = email.FromName
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(fromName, fromEmail))
	message.Subject = email.Subject

	personalization := mail.NewPersonalization()
	for _, to := range email.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	for _, cc := range email.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", email.Body))

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// LogMailer only logs outbound emails
type LogMailer struct {
	log *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the envelope of email
func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.log.Info("Email not delivered, no provider configured",
		zap.Strings("to", email.To),
		zap.Strings("cc", email.CC),
		zap.String("subject", email.Subject))
	return nil
}
