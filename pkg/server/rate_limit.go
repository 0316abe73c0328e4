package server

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/adfharrison1/go-qbe/pkg/api"
)

// rateLimitMiddleware rejects requests beyond a shared token bucket with 429
func rateLimitMiddleware(rps float64, burst int) mux.MiddlewareFunc {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Printf("WARN: Rate limit exceeded for %s %s", r.Method, r.URL.Path)
				w.Header().Set("Retry-After", "1")
				api.WriteJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
