package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expense_tracker"

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ResponsiblesCreated     prometheus.Counter
	ExpensesCreated         prometheus.Counter
	ExpensesDeleted         prometheus.Counter
	ExpenseDeleteRejections *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
}

// New creates a dedicated registry with the runtime collectors and registers
// the application metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ResponsiblesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responsibles_created_total",
			Help:      "Total number of responsibles created",
		}),
		ExpensesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Total number of expenses created",
		}),
		ExpensesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_deleted_total",
			Help:      "Total number of expenses deleted",
		}),
		ExpenseDeleteRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expense_delete_rejections_total",
			Help:      "Expense deletions refused, by reason",
		}, []string{"reason"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) IncrementResponsiblesCreated() {
	if m == nil {
		return
	}
	m.ResponsiblesCreated.Inc()
}

func (m *Metrics) IncrementExpensesCreated() {
	if m == nil {
		return
	}
	m.ExpensesCreated.Inc()
}

func (m *Metrics) IncrementExpensesDeleted() {
	if m == nil {
		return
	}
	m.ExpensesDeleted.Inc()
}

func (m *Metrics) IncrementDeleteRejection(reason string) {
	if m == nil {
		return
	}
	m.ExpenseDeleteRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
