package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the directory.
// It includes counters for data loads and renders, gauges for the loaded
// employee count and the last successful load, and histograms for load,
// render and database query durations.
type Metrics struct {
	Loads              *prometheus.CounterVec
	EmployeesLoaded    prometheus.Gauge
	LastSuccessfulLoad prometheus.Gauge
	LoadDuration       *prometheus.HistogramVec
	Renders            *prometheus.CounterVec
	RenderDuration     *prometheus.HistogramVec
	DBQueryDuration    *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance and registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Loads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "iris_loads_total",
			Help: "Total times the employee list was loaded successfully or unsuccessfully.",
		}, []string{"status"}),
		EmployeesLoaded: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "iris_employees_loaded",
			Help: "Number of employee records held by the directory",
		}),
		LastSuccessfulLoad: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "iris_last_successful_load_timestamp",
			Help: "Last time when the employee list was loaded successfully",
		}),
		LoadDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "iris_load_duration_seconds",
			Help: "Measures how long it takes to fetch and decode the employee list",
		}, []string{"source"}),
		Renders: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "iris_renders_total",
			Help: "Total number of directory re-renders by trigger.",
		}, []string{"trigger"}),
		RenderDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iris_render_duration_seconds",
			Help:    "Duration of building a view or writing it to an output format.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}), // format: 'view', 'html', 'json', 'xlsx', 'text'
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iris_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}),
	}

	metrics.Loads.WithLabelValues("success")
	metrics.Loads.WithLabelValues("failure")

	return metrics
}
