package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/testersconnect/site/internal/notifications"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/mail"
	"github.com/testersconnect/site/pkg/openapi"
	"github.com/testersconnect/site/pkg/routes"
)

const admin = "hello@testersconnect.com"

type recorder struct {
	sent []mail.Message
	err  error
}

func (r *recorder) Send(ctx context.Context, msg mail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newMux(sender *recorder) *http.ServeMux {
	sys := notifications.New(sender, admin, logging.Discard())
	h := notifications.NewHandler(sys, logging.Discard())
	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0"), h.Routes())
	return mux
}

func post(t *testing.T, mux http.Handler, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	return rec.Code, out
}

func TestContact_SendsToAdminAndSender(t *testing.T) {
	sender := &recorder{}
	status, body := post(t, newMux(sender), "/contact",
		`{"name":"  Ada  ","email":" Ada@Example.COM ","message":" hi there "}`)

	if status != http.StatusOK || body["ok"] != true {
		t.Fatalf("status = %d body = %v", status, body)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	msg := sender.sent[0]
	if len(msg.To) != 2 || msg.To[0] != admin || msg.To[1] != "ada@example.com" {
		t.Errorf("To = %v", msg.To)
	}
	if msg.ReplyTo != "ada@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	if msg.Template != notifications.TemplateContact {
		t.Errorf("Template = %q", msg.Template)
	}
	if msg.Subject != "New contact message — Testers Connect" {
		t.Errorf("Subject = %q", msg.Subject)
	}

	want := map[string]string{
		"full_name": "Ada",
		"email":     "ada@example.com",
		"message":   "hi there",
		"source":    "testersconnect",
	}
	for k, v := range want {
		if msg.Variables[k] != v {
			t.Errorf("Variables[%q] = %v, want %q", k, msg.Variables[k], v)
		}
	}
}

func TestContact_AcceptsFullName(t *testing.T) {
	sender := &recorder{}
	status, _ := post(t, newMux(sender), "/contact",
		`{"full_name":"Grace","email":"g@example.com","message":"hello"}`)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got := sender.sent[0].Variables["full_name"]; got != "Grace" {
		t.Errorf("full_name = %v, want Grace", got)
	}
}

func TestContact_HoneypotDropsSilently(t *testing.T) {
	sender := &recorder{}
	status, body := post(t, newMux(sender), "/contact",
		`{"name":"Bot","email":"bot@example.com","message":"buy","company_site":"spam.example"}`)

	if status != http.StatusOK || body["ok"] != true {
		t.Errorf("status = %d body = %v", status, body)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(sender.sent))
	}
}

func TestContact_RejectsIncompleteForms(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com","message":"x"}`},
		{"missing email", `{"name":"A","message":"x"}`},
		{"email without at", `{"name":"A","email":"example.com","message":"x"}`},
		{"blank message", `{"name":"A","email":"a@example.com","message":"   "}`},
		{"invalid json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recorder{}
			status, body := post(t, newMux(sender), "/contact", tt.body)

			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if body["ok"] != false || body["error"] != "Please fill in all required fields." {
				t.Errorf("body = %v", body)
			}
			if len(sender.sent) != 0 {
				t.Errorf("sent %d messages, want 0", len(sender.sent))
			}
		})
	}
}

func TestContact_DeliveryFailure(t *testing.T) {
	sender := &recorder{err: errors.New("sendgrid: status 401")}
	status, body := post(t, newMux(sender), "/contact",
		`{"name":"A","email":"a@example.com","message":"x"}`)

	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if body["ok"] != false || body["error"] != "sendgrid: status 401" {
		t.Errorf("body = %v", body)
	}
}

func TestSubscribe(t *testing.T) {
	sender := &recorder{}
	status, body := post(t, newMux(sender), "/subscribe", `{"email":"new@example.com"}`)

	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d body = %v", status, body)
	}
	if _, ok := body["ok"]; ok {
		t.Errorf("body carries ok key: %v", body)
	}

	msg := sender.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "new@example.com" {
		t.Errorf("To = %v", msg.To)
	}
	if msg.Template != notifications.TemplateSubscribe || msg.Subject != "Welcome to Testers Connect 🎉" {
		t.Errorf("Template = %q Subject = %q", msg.Template, msg.Subject)
	}
	if msg.ReplyTo != "" {
		t.Errorf("ReplyTo = %q, want empty", msg.ReplyTo)
	}
}

func TestSubscribe_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"missing email", `{}`, nil, http.StatusBadRequest, "Email is required"},
		{"empty email", `{"email":""}`, nil, http.StatusBadRequest, "Email is required"},
		{"invalid json", `nope`, nil, http.StatusInternalServerError, "Failed to subscribe"},
		{"delivery failure", `{"email":"a@example.com"}`, errors.New("down"), http.StatusInternalServerError, "Failed to subscribe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, newMux(&recorder{err: tt.err}), "/subscribe", tt.body)

			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if body["error"] != tt.message {
				t.Errorf("error = %v, want %q", body["error"], tt.message)
			}
			if _, ok := body["ok"]; ok {
				t.Errorf("body carries ok key: %v", body)
			}
		})
	}
}
