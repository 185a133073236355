// Package notifications sends the contact form and newsletter emails.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/testersconnect/site/pkg/mail"
	"github.com/testersconnect/site/pkg/validation"
)

const (
	TemplateContact   = "contact"
	TemplateSubscribe = "website-subscribe"

	contactSubject   = "New contact message — Testers Connect"
	subscribeSubject = "Welcome to Testers Connect 🎉"
	contactSource    = "testersconnect"
)

// ContactRequest is a contact form submission. CompanySite is a honeypot
// that real visitors never fill in.
type ContactRequest struct {
	FullName    string
	Email       string
	Message     string
	CompanySite string
}

// DeliveryError is a mail provider failure.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// System defines the outbound notification operations.
type System interface {
	// Contact reports whether a message was sent. Honeypot hits are
	// accepted without sending.
	Contact(ctx context.Context, req ContactRequest) (bool, error)
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	mail    mail.System
	adminTo string
	logger  *slog.Logger
}

// New creates the notification system. adminTo receives a copy of every
// contact message.
func New(sender mail.System, adminTo string, logger *slog.Logger) System {
	return &service{
		mail:    sender,
		adminTo: adminTo,
		logger:  logger.With("system", "notifications"),
	}
}

func (s *service) Contact(ctx context.Context, req ContactRequest) (bool, error) {
	name := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	if strings.TrimSpace(req.CompanySite) != "" {
		s.logger.Info("contact honeypot triggered")
		return false, nil
	}

	if name == "" || email == "" || !strings.Contains(email, "@") || message == "" {
		return false, validation.New("Please fill in all required fields.")
	}

	err := s.mail.Send(ctx, mail.Message{
		To:       []string{s.adminTo, email},
		ReplyTo:  email,
		Subject:  contactSubject,
		Template: TemplateContact,
		Variables: map[string]any{
			"full_name": name,
			"email":     email,
			"message":   message,
			"source":    contactSource,
		},
	})
	if err != nil {
		return false, &DeliveryError{Err: err}
	}

	s.logger.Info("contact message sent", "email", email)
	return true, nil
}

func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return validation.New("Email is required")
	}

	err := s.mail.Send(ctx, mail.Message{
		To:        []string{email},
		Subject:   subscribeSubject,
		Template:  TemplateSubscribe,
		Variables: map[string]any{},
	})
	if err != nil {
		return fmt.Errorf("send welcome email: %w", &DeliveryError{Err: err})
	}

	s.logger.Info("subscriber welcomed", "email", email)
	return nil
}

// contactFailure is the message shown for a failed contact submission.
func contactFailure(err error) string {
	var derr *DeliveryError
	if errors.As(err, &derr) {
		if msg := derr.Error(); msg != "" {
			return msg
		}
		return "Email failed to send."
	}
	return "Message failed. Try again."
}
