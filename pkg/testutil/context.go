package testutil

import (
	"net/http"
	"time"

	"citizengw/pkg/domain"
	"citizengw/pkg/requestcontext"
)

// WithOperator attaches an authenticated operator to the request context,
// simulating what the auth middleware does.
func WithOperator(req *http.Request, operator domain.Operator) *http.Request {
	return req.WithContext(requestcontext.WithOperator(req.Context(), operator))
}

// WithRequestID attaches a correlation ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request timestamp, keeping TTL arithmetic in
// tests deterministic.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithClientMetadata attaches client IP and user agent to the request
// context, simulating the metadata middleware.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
