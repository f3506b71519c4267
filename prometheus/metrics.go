package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"ugc-service/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Sign-in attempts
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ugc_login_total",
			Help: "Total number of sign-in attempts",
		},
	)

	// Sign-ups
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ugc_register_total",
			Help: "Total number of user registrations",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "missing_token", "invalid_token", "revoked_token", "user_not_found" etc.
	)

	// Organization gate rejections
	OrganizationDeniedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_organization_denied_total",
			Help: "Total number of requests rejected by the organization gate",
		},
		[]string{"reason"}, // reason can be "missing_header", "not_member"
	)

	// Resource mutations
	ResourceOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_resource_operations_total",
			Help: "Total number of resource operations",
		},
		[]string{"resource", "operation"},
	)

	// Outbound email
	EmailSentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_emails_sent_total",
			Help: "Total number of outbound emails by result",
		},
		[]string{"result"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ugc_active_tokens",
			Help: "Number of tokens issued minus tokens signed out since start",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(OrganizationDeniedCounter)
	prometheus.MustRegister(ResourceOperationCounter)
	prometheus.MustRegister(EmailSentCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
}

// Version is reported by the service info gauge
const Version = "1.0.0"

// InitMetrics publishes the service info gauge under the configured prefix
func InitMetrics(cfg *config.Config) prometheus.Gauge {
	info := promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   cfg.Metrics.Prefix,
		Name:        "service_info",
		Help:        "Information about the running service",
		ConstLabels: prometheus.Labels{"service": cfg.ServiceName, "version": Version},
	})
	info.Set(1)
	return info
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return nil
		}
	}
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordOrganizationDenied records an organization gate rejection
func RecordOrganizationDenied(reason string) {
	OrganizationDeniedCounter.With(prometheus.Labels{"reason": reason}).Inc()
}

// RecordResourceOperation records a create/update/delete on a resource
func RecordResourceOperation(resource, operation string) {
	ResourceOperationCounter.With(prometheus.Labels{"resource": resource, "operation": operation}).Inc()
}

// RecordEmailSent records the outcome of an outbound email
func RecordEmailSent(result string) {
	EmailSentCounter.With(prometheus.Labels{"result": result}).Inc()
}
