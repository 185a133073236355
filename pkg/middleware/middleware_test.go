package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/testersconnect/site/pkg/middleware"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	tests := []struct {
		name       string
		cfg        *middleware.CORSConfig
		method     string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", cfg, http.MethodGet, "http://localhost:3000", false, "http://localhost:3000", http.StatusOK},
		{"foreign origin", cfg, http.MethodGet, "http://evil.example", false, "", http.StatusOK},
		{"preflight", cfg, http.MethodOptions, "http://localhost:3000", true, "http://localhost:3000", http.StatusNoContent},
		{"disabled", &middleware.CORSConfig{Origins: cfg.Origins}, http.MethodGet, "http://localhost:3000", false, "", http.StatusOK},
		{"no origins", &middleware.CORSConfig{Enabled: true}, http.MethodGet, "http://localhost:3000", false, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/events", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rec := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(ok()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.preflight {
				if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
					t.Errorf("Allow-Methods = %q", got)
				}
				if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
					t.Errorf("Max-Age = %q", got)
				}
			}
		})
	}
}

func TestCORSConfig_FinalizeFromEnv(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", " http://a.example , http://b.example ,")
	t.Setenv("TEST_CORS_ENABLED", "true")

	cfg := &middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.example" || cfg.Origins[1] != "http://b.example" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 3600 || len(cfg.AllowedMethods) == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestCORSConfig_Merge(t *testing.T) {
	base := &middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET"},
		MaxAge:         3600,
	}

	base.Merge(&middleware.CORSConfig{Enabled: true, Origins: []string{"https://testersconnect.com"}})

	if len(base.Origins) != 1 || base.Origins[0] != "https://testersconnect.com" {
		t.Errorf("Origins = %v, want replaced", base.Origins)
	}
	if len(base.AllowedMethods) != 1 {
		t.Errorf("AllowedMethods = %v, want kept", base.AllowedMethods)
	}
	if base.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want kept", base.MaxAge)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/contact?x=1", nil))

	out := buf.String()
	for _, want := range []string{"msg=request", "method=POST", "uri=\"/contact?x=1\"", "status=418", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/events/", "/events"},
		{http.MethodPost, "/admin/events/", "/admin/events"},
		{http.MethodGet, "/events", "/events"},
		{http.MethodGet, "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			middleware.TrimSlash()(ok()).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("served path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystem_AppliesInOrder(t *testing.T) {
	var order []string
	sys := middleware.New()
	for _, name := range []string{"outer", "inner"} {
		sys.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	sys.Apply(ok()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
}
