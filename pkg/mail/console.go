package mail

import (
	"context"
	"log/slog"
)

// Console logs messages instead of delivering them.
type Console struct {
	cfg    *Config
	logger *slog.Logger
}

func NewConsole(cfg *Config, logger *slog.Logger) *Console {
	return &Console{
		cfg:    cfg,
		logger: logger.With("system", "mail", "provider", "console"),
	}
}

func (c *Console) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	c.logger.Info(
		"email",
		"from", c.cfg.FromEmail,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"template", c.cfg.TemplateID(msg.Template),
		"variables", msg.Variables,
	)
	return nil
}
