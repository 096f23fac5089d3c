package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/dashboard"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/platform/metrics"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/frahmantamala/expense-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	chiV5Middleware "github.com/go-chi/chi/v5/middleware"
)

type Dependencies struct {
	Server             internal.ServerConfig
	Metrics            internal.MetricsConfig
	Logger             *slog.Logger
	DB                 *sql.DB
	Registry           *metrics.Metrics
	ResponsibleHandler *responsible.Handler
	ExpenseHandler     *expense.Handler
	DashboardHandler   *dashboard.Handler
}

func NewRouter(deps Dependencies) *chi.Mux {
	router := chi.NewRouter()
	RegisterAllRoutes(router, deps)
	return router
}

func RegisterAllRoutes(router *chi.Mux, deps Dependencies) {
	healthHandler := NewHealthHandler(deps.DB)

	bodyLimit := deps.Server.BodyLimitBytes
	if bodyLimit <= 0 {
		bodyLimit = internal.DefaultBodyLimitBytes
	}

	// Apply global middleware
	router.Use(middleware.CORS(deps.Server.Origins()))
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	if deps.Metrics.Enabled && deps.Registry != nil {
		router.Use(middleware.Metrics(deps.Registry))
	}
	router.Use(chiV5Middleware.RequestSize(bodyLimit))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, internal.ErrorResponse{Error: "not found"})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, internal.ErrorResponse{Error: "method not allowed"})
	})

	router.Get("/", index)
	router.Get("/health", healthHandler.liveness)
	router.Get("/ready", healthHandler.readiness)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	if deps.Metrics.Enabled && deps.Registry != nil {
		path := deps.Metrics.Path
		if path == "" {
			path = internal.DefaultMetricsPath
		}
		router.Handle(path, deps.Registry.Handler())
	}

	if h := deps.ResponsibleHandler; h != nil {
		router.Route("/responsibles", func(r chi.Router) {
			r.Get("/", h.ListResponsibles)
			r.Post("/", h.CreateResponsible)
			r.Put("/{id}", h.UpdateResponsible)
			r.Delete("/{id}", h.DeleteResponsible)
		})
	}

	if h := deps.ExpenseHandler; h != nil {
		router.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.CreateExpense)
			r.Put("/{id}", h.UpdateExpense)
			r.Delete("/{id}", h.DeleteExpense)
			r.Patch("/{id}/status", h.UpdateExpenseStatus)
		})
	}

	if h := deps.DashboardHandler; h != nil {
		router.Get("/dashboard", h.GetDashboard)
	}
}
