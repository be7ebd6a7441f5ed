// Package requestid assigns each request a unique invocation identifier.
// The identifier doubles as the audit row key, so it must be set before any
// audited handler runs.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"citizengw/pkg/requestcontext"
)

// Header is the response header echoing the request's invocation ID.
const Header = "X-Request-Id"

// Middleware honors an inbound X-Request-Id when present (so retries audit
// idempotently under the same row key) and generates a UUID otherwise.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
