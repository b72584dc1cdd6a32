// Package requesttime provides middleware for request-scoped time.
// Every stage of one request (engine run, summary, history entry) shares the same "now".
package requesttime

import (
	"net/http"
	"time"

	"dirok/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
