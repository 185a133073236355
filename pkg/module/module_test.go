package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/testersconnect/site/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func body(t *testing.T, h http.Handler, target string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	b, _ := io.ReadAll(rec.Body)
	return string(b)
}

func TestNew_RejectsInvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, echoPath())
		})
	}
}

func TestModule_Serve_StripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	tests := []struct {
		path string
		want string
	}{
		{"/api", "/"},
		{"/api/events", "/events"},
		{"/api/events/kickoff", "/events/kickoff"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModule_MiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	m.Use(mark("first"))
	m.Use(mark("second"))

	m.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRouter_DispatchesByFirstSegment(t *testing.T) {
	r := module.NewRouter()
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Mount(module.New("/api", echoPath()))
	r.Mount(module.New("/storage", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("object " + req.URL.Path))
	})))

	tests := []struct {
		target string
		want   string
	}{
		{"/healthz", "ok"},
		{"/api/resources", "/resources"},
		{"/storage/event-covers/a.png", "object /event-covers/a.png"},
	}

	for _, tt := range tests {
		if got := body(t, r, tt.target); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestRouter_UnknownPathFallsThrough(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", echoPath()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apix/events", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
