package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citizengw/internal/platform/metrics"
	"citizengw/pkg/platform/httputil"
	"citizengw/pkg/platform/middleware/auth"
	"citizengw/pkg/platform/middleware/metadata"
	"citizengw/pkg/platform/middleware/requestid"
	"citizengw/pkg/platform/middleware/requesttime"
)

// HealthCheck probes one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter assembles the gateway's HTTP surface. Guarded endpoints sit
// behind operator authentication; health and metrics stay open.
func NewRouter(handler *Handler, parser auth.OperatorParser, logger *slog.Logger, checks ...HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", handleHealth(logger, checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.Middleware("api"))
		r.Use(auth.RequireOperator(parser, logger))
		handler.Register(r)
	})
	return r
}

func handleHealth(logger *slog.Logger, checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", check.Name, "error", err)
				results[check.Name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[check.Name] = "ok"
		}
		httputil.WriteJSON(w, status, results)
	}
}
