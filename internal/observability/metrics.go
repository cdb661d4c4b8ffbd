package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// items-api HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "items_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "items_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "items_active_requests",
		Help: "Current in-flight requests",
	})

	// store metrics
	DBConnectAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "items_db_connect_attempts_total",
		Help: "Database connect attempts at startup",
	}, []string{"result"})

	DBReady = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "items_db_ready",
		Help: "1 if the last readiness query succeeded",
	})

	StoreOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "items_store_ops_total",
		Help: "Item statements executed",
	}, []string{"op", "result"})

	StoreOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "items_store_op_duration_seconds",
		Help:    "Item statement latency",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"op"})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		DBConnectAttemptsTotal, DBReady, StoreOpsTotal, StoreOpDuration,
	)
}
