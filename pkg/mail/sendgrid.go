package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid delivers messages as SendGrid dynamic template sends.
type SendGrid struct {
	client *sendgrid.Client
	from   *sgmail.Email
	cfg    *Config
	logger *slog.Logger
}

func NewSendGrid(cfg *Config, logger *slog.Logger) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		cfg:    cfg,
		logger: logger.With("system", "mail", "provider", "sendgrid"),
	}
}

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	res, err := s.client.SendWithContext(ctx, s.prepare(msg))
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		s.logger.Error("sendgrid rejected message", "status", res.StatusCode, "body", res.Body)
		return fmt.Errorf("send email: provider returned status %d", res.StatusCode)
	}

	s.logger.Info("email sent", "template", msg.Template, "recipients", len(msg.To))
	return nil
}

func (s *SendGrid) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		if to != "" {
			p.AddTos(sgmail.NewEmail("", to))
		}
	}
	p.SetDynamicTemplateData("subject", msg.Subject)
	for k, v := range msg.Variables {
		p.SetDynamicTemplateData(k, v)
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.SetTemplateID(s.cfg.TemplateID(msg.Template))
	m.AddPersonalizations(p)
	if msg.ReplyTo != "" {
		m.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}
	return m
}
