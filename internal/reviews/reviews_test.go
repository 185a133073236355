package reviews_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/testersconnect/site/internal/reviews"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/openapi"
	"github.com/testersconnect/site/pkg/routes"
)

const resourceID = "3f2a9c1e-8b7d-4c3a-9e21-5d6f7a8b9c0d"

type memRepo struct {
	calls   int
	reviews []reviews.Review
	fail    error
}

func (m *memRepo) ListPublished(ctx context.Context, id uuid.UUID) ([]reviews.Review, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	out := []reviews.Review{}
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if m.reviews[i].ResourceID == id {
			out = append(out, m.reviews[i])
		}
	}
	return out, nil
}

func (m *memRepo) Insert(ctx context.Context, id uuid.UUID, name string, rating int, comment string) (*reviews.Review, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	r := reviews.Review{
		ID:         uuid.New(),
		ResourceID: id,
		Name:       name,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	m.reviews = append(m.reviews, r)
	return &r, nil
}

func newMux(repo *memRepo) *http.ServeMux {
	h := reviews.NewHandler(reviews.New(repo, logging.Discard()), logging.Discard())
	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0"), h.Routes())
	return mux
}

func call(t *testing.T, mux http.Handler, req *http.Request) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	return rec.Code, body
}

func TestList_RejectsBeforeQuerying(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"missing", "/resource-reviews", "resource_id is required"},
		{"not uuid shaped", "/resource-reviews?resource_id=abc", "Invalid resource_id"},
		{"wrong version nibble", "/resource-reviews?resource_id=3f2a9c1e-8b7d-7c3a-9e21-5d6f7a8b9c0d", "Invalid resource_id"},
		{"wrong variant", "/resource-reviews?resource_id=3f2a9c1e-8b7d-4c3a-1e21-5d6f7a8b9c0d", "Invalid resource_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			status, body := call(t, newMux(repo), httptest.NewRequest(http.MethodGet, tt.target, nil))

			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if body["ok"] != false || body["message"] != tt.message {
				t.Errorf("body = %v, want message %q", body, tt.message)
			}
			if repo.calls != 0 {
				t.Errorf("repository called %d times", repo.calls)
			}
		})
	}
}

func TestCreate_Validation(t *testing.T) {
	long := strings.Repeat("x", 61)
	longComment := strings.Repeat("é", 801)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", `{}`, "resource_id, name, rating, comment are required"},
		{"not json", `nope`, "resource_id, name, rating, comment are required"},
		{"blank name", `{"resource_id":"` + resourceID + `","name":"  ","rating":5,"comment":"ok"}`, "resource_id, name, rating, comment are required"},
		{"rating not numeric", `{"resource_id":"` + resourceID + `","name":"A","rating":"great","comment":"ok"}`, "resource_id, name, rating, comment are required"},
		{"bad id", `{"resource_id":"abc","name":"A","rating":5,"comment":"ok"}`, "Invalid resource_id"},
		{"rating zero", `{"resource_id":"` + resourceID + `","name":"A","rating":0,"comment":"ok"}`, "rating must be 1-5"},
		{"rating null", `{"resource_id":"` + resourceID + `","name":"A","rating":null,"comment":"ok"}`, "rating must be 1-5"},
		{"rating six", `{"resource_id":"` + resourceID + `","name":"A","rating":"6","comment":"ok"}`, "rating must be 1-5"},
		{"rating fractional", `{"resource_id":"` + resourceID + `","name":"A","rating":4.5,"comment":"ok"}`, "rating must be a whole number"},
		{"name too long", `{"resource_id":"` + resourceID + `","name":"` + long + `","rating":5,"comment":"ok"}`, "name is too long"},
		{"comment too long", `{"resource_id":"` + resourceID + `","name":"A","rating":5,"comment":"` + longComment + `"}`, "comment is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			req := httptest.NewRequest(http.MethodPost, "/resource-reviews", strings.NewReader(tt.body))
			status, body := call(t, newMux(repo), req)

			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if body["message"] != tt.message {
				t.Errorf("message = %v, want %q", body["message"], tt.message)
			}
			if repo.calls != 0 {
				t.Error("repository reached despite rejection")
			}
		})
	}
}

func TestCreateThenList(t *testing.T) {
	repo := &memRepo{}
	mux := newMux(repo)

	for _, c := range []string{"first", "second"} {
		body := `{"resource_id":"` + strings.ToUpper(resourceID) + `","name":" Ada ","rating":"4","comment":"` + c + `"}`
		status, resp := call(t, mux, httptest.NewRequest(http.MethodPost, "/resource-reviews", strings.NewReader(body)))
		if status != http.StatusOK {
			t.Fatalf("create status = %d (%v)", status, resp)
		}
		review, _ := resp["review"].(map[string]any)
		if review["name"] != "Ada" || review["rating"] != float64(4) {
			t.Errorf("review = %v", review)
		}
	}

	status, resp := call(t, mux, httptest.NewRequest(http.MethodGet, "/resource-reviews?resource_id="+resourceID, nil))
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	items, _ := resp["reviews"].([]any)
	if len(items) != 2 {
		t.Fatalf("reviews = %d, want 2", len(items))
	}
	if first, _ := items[0].(map[string]any); first["comment"] != "second" {
		t.Errorf("newest first expected, got %v", first["comment"])
	}
}

func TestBackendFailures(t *testing.T) {
	repo := &memRepo{fail: errors.New("connection reset")}
	mux := newMux(repo)

	status, body := call(t, mux, httptest.NewRequest(http.MethodGet, "/resource-reviews?resource_id="+resourceID, nil))
	if status != http.StatusInternalServerError || body["message"] != "connection reset" {
		t.Errorf("list = %d %v", status, body)
	}

	repo.fail = reviews.ErrResourceNotFound
	req := httptest.NewRequest(http.MethodPost, "/resource-reviews",
		strings.NewReader(`{"resource_id":"`+resourceID+`","name":"A","rating":5,"comment":"ok"}`))
	status, body = call(t, mux, req)
	if status != http.StatusInternalServerError || body["message"] != "resource not found" {
		t.Errorf("create for missing resource = %d %v, want 500", status, body)
	}
}
