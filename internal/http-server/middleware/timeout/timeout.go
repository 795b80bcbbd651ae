package timeout

import (
	"context"
	"net/http"
	"time"
)

// Timeout cancels the request context after the given number of minutes.
// Metrics requests fan out to the gateway and can take a while on large
// accounts, so the budget is generous.
func Timeout(minutes int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), time.Duration(minutes)*time.Minute)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
