package middleware

import "net/http"

// DefaultSecurityHeaders keep rendered user data from being framed or
// sniffed into another content type. Scripts are limited to the page itself
// and the two CDNs it loads from.
var DefaultSecurityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	"Content-Security-Policy": "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline'; " +
		"connect-src 'self' ws: wss:; " +
		"img-src 'self' data:",
}

// Headers sets the given headers on every response unless the handler
// already set them. Entries in remove are deleted before the handler runs.
func Headers(add map[string]string, remove ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, header := range remove {
				w.Header().Del(header)
			}

			for key, value := range add {
				if existing := w.Header().Get(key); existing == "" {
					w.Header().Set(key, value)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
