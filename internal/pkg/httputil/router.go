package httputil

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"github.com/bissquit/hotel-desk/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck returns an error when the service cannot serve logins.
type HealthCheck func(ctx context.Context) error

// NewRouter builds the operational router: /metrics, /version and /healthz.
func NewRouter(logger *slog.Logger, health HealthCheck) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(scrapeLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, map[string]string{
			"version":    version.Version,
			"commit":     version.GitCommit,
			"build_date": version.BuildDate,
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := health(req.Context()); err != nil {
			logger.Warn("health check failed", "error", err)
			Error(w, http.StatusServiceUnavailable, "account stores unavailable")
			return
		}
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// scrapeLogger puts a request-scoped logger into the context and records
// each request at debug level once it completes.
func scrapeLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, logger := ctxlog.With(ctxlog.WithLogger(req.Context(), base),
				"request_id", middleware.GetReqID(req.Context()))

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req.WithContext(ctx))

			logger.Debug("operational request served",
				"path", req.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start),
			)
		})
	}
}
