package httpapi

import (
	"net/http"
	"time"

	"brokerage-dashboard-service/internal/availability"
	"brokerage-dashboard-service/internal/brokerage"
	"brokerage-dashboard-service/internal/bulkbill"
	"brokerage-dashboard-service/internal/bulkops"
	"brokerage-dashboard-service/internal/config"
	"brokerage-dashboard-service/internal/http/handlers"
	"brokerage-dashboard-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(api brokerage.API, sessions bulkops.Store, logger *zap.Logger, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(middleware.RequestID())

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			ExposedHeaders:   []string{"Content-Disposition", "X-Download-Message"},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	checker := availability.NewChecker(api, availability.NewCache(), availability.NewCache())
	h := &handlers.Handler{
		Logger:       logger,
		Config:       cfg,
		Brokerage:    api,
		Sessions:     sessions,
		Downloader:   bulkbill.NewDownloader(api, logger),
		Availability: checker,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.DashboardAuth(cfg.JWTSecret))

		r.Get("/analytics/{financialYearId}", h.FinancialYearAnalytics)
		r.Get("/analytics/{financialYearId}/compare/{otherId}", h.CompareFinancialYears)

		r.Get("/merchants", h.MerchantsList)

		r.Post("/bulk-ops/sessions", h.BulkOpsSessionCreate)
		r.Get("/bulk-ops/sessions/{sessionId}", h.BulkOpsSessionGet)
		r.Patch("/bulk-ops/sessions/{sessionId}", h.BulkOpsSessionPatch)
		r.Delete("/bulk-ops/sessions/{sessionId}", h.BulkOpsSessionDelete)

		r.Post("/bulk-bills/download", h.BulkBillsDownload)
		r.Get("/bulk-bills/status", h.BulkBillsStatus)
		r.Delete("/bulk-bills/error", h.BulkBillsClearError)

		r.Get("/availability/username", h.AvailabilityUsername)
		r.Get("/availability/username/suggest", h.AvailabilitySuggestUsername)
		r.Get("/availability/firm-name", h.AvailabilityFirmName)
	})

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
