// Package auth provides the operator authentication middleware. Bearer token
// verification itself is delegated to an OperatorParser implementation; the
// middleware only enforces presence and injects the resolved operator into
// the request context.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"citizengw/pkg/domain"
	"citizengw/pkg/requestcontext"
)

// OperatorParser turns a verified bearer credential into an Operator.
// Implementations own signature and issuer validation.
type OperatorParser interface {
	ParseOperator(tokenString string) (domain.Operator, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireOperator rejects requests without a valid operator bearer token and
// stores the resolved operator in the context for handlers and services.
func RequireOperator(parser OperatorParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			operator, err := parser.ParseOperator(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid operator token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithOperator(ctx, operator)))
		})
	}
}
