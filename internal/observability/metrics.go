package observability

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	vendorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vwheritage_requests_total",
			Help: "Requests sent to the VW Heritage API.",
		},
		[]string{"method", "status"},
	)
	vendorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vwheritage_request_duration_seconds",
			Help:    "Duration of requests sent to the VW Heritage API.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "status"},
	)
	recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vwheritage_records_total",
			Help: "Normalized records returned by the VW Heritage API.",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(vendorRequestsTotal, vendorRequestDuration, recordsTotal)
}

// RecordRequest counts one vendor call. A status of 0 means no response arrived.
func RecordRequest(method string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	vendorRequestsTotal.WithLabelValues(method, status).Inc()
	vendorRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

func RecordRows(method string, n int) {
	recordsTotal.WithLabelValues(method).Add(float64(n))
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode == 0:
		return "error"
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Start serves /metrics on its own listener in the background.
func Start(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("metrics listener stopped: %v", err)
		}
	}()
}
