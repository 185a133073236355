package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash serves paths with a trailing slash as their canonical form
// without it. The path is rewritten rather than redirected because modules
// see their requests with the mount prefix already stripped.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
				target := strings.TrimRight(r.URL.Path, "/")
				if target == "" {
					target = "/"
				}
				r2 := r.Clone(r.Context())
				r2.URL.Path = target
				r2.URL.RawPath = ""
				next.ServeHTTP(w, r2)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
