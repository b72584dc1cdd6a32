// Package requestid propagates a request identifier into the request context.
package requestid

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"dirok/pkg/requestcontext"
)

// Header carries the request ID on both request and response.
const Header = "X-Request-ID"

const maxLength = 128

// Middleware reuses an incoming X-Request-ID (or the one chi's RequestID
// middleware generated) and otherwise mints a UUID. The ID is echoed back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxLength {
			id = middleware.GetReqID(r.Context())
		}
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
