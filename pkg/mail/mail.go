// Package mail sends templated transactional email through a configured provider.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var ErrNoRecipients = errors.New("mail: no recipients")

// Message is a templated email. Template is a logical name resolved to a
// provider template id through configuration.
type Message struct {
	To        []string
	ReplyTo   string
	Subject   string
	Template  string
	Variables map[string]any
}

// System delivers messages synchronously and reports provider failures.
type System interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the configured provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderSendGrid:
		return NewSendGrid(cfg, logger), nil
	case ProviderConsole, "":
		return NewConsole(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

func (m Message) validate() error {
	for _, to := range m.To {
		if to != "" {
			return nil
		}
	}
	return ErrNoRecipients
}
