package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Tenant switch counter
	TenantSwitchCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_tenant_switch_total",
			Help: "Total number of tenant switch requests",
		},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "user_not_found", "invalid_password", "no_tenants", etc.
	)

	// Tenant connection counters
	TenantConnectCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_tenant_connections_total",
			Help: "Total number of tenant database connections opened",
		},
		[]string{"tenant_id"},
	)

	TenantConnectErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_tenant_connection_errors_total",
			Help: "Total number of failed tenant database connection attempts",
		},
		[]string{"tenant_id"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Gauge metrics
var (
	// ActiveTenantConnections tracks live connections held in the tenant cache
	ActiveTenantConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_tenant_connections_active",
			Help: "Number of live tenant database connections in the cache",
		},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// InitMetrics registers all metrics with the Prometheus registry
func InitMetrics() {
	prometheus.MustRegister(
		LoginCounter,
		TenantSwitchCounter,
		AuthErrorCounter,
		TenantConnectCounter,
		TenantConnectErrorCounter,
		HTTPRequestCounter,
		ActiveTenantConnections,
		RequestDuration,
		DBOperationDuration,
	)
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// TrackDBOperation returns a function that records the duration of a database
// operation when invoked. Use with defer:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.With(prometheus.Labels{"operation": operation}).Observe(time.Since(start).Seconds())
	}
}

// GetPrometheusHandler returns the HTTP handler for the /metrics endpoint
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware returns an Echo middleware that records request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
