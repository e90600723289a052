package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gstbill-erp/gstbill/internal/auth"
	"github.com/gstbill-erp/gstbill/internal/catalog"
	"github.com/gstbill-erp/gstbill/internal/customers"
	"github.com/gstbill-erp/gstbill/internal/drafts"
	"github.com/gstbill-erp/gstbill/internal/invoice"
	"github.com/gstbill-erp/gstbill/internal/observability"
	"github.com/gstbill-erp/gstbill/internal/shared"
	"github.com/gstbill-erp/gstbill/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler     *auth.Handler
	CatalogHandler  *catalog.Handler
	CustomerHandler *customers.Handler
	DraftHandler    *drafts.Handler
	InvoiceHandler  *invoice.Handler
	JobsHandler     *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with the standard middleware chain and
// all API routes mounted under /api.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		// Everything past authentication requires a logged-in session.
		r.Group(func(r chi.Router) {
			r.Use(RequireUser)
			r.Route("/catalog", params.CatalogHandler.MountRoutes)
			params.CustomerHandler.MountRoutes(r)
			r.Route("/billing", func(r chi.Router) {
				params.DraftHandler.MountRoutes(r)
				params.InvoiceHandler.MountRoutes(r)
			})
			if params.JobsHandler != nil {
				r.Route("/jobs", params.JobsHandler.MountRoutes)
			}
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
