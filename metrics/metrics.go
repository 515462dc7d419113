// Package metrics provides Prometheus metrics for the drivedash client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivedash_operations_total",
			Help: "Total user operations by outcome",
		},
		[]string{"operation", "result"},
	)

	staleRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drivedash_stale_refreshes_total",
			Help: "Listing responses discarded because a newer refresh was issued",
		},
	)

	uploadedFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivedash_uploaded_files_total",
			Help: "Files sent to the upload endpoint",
		},
		[]string{"status"},
	)

	uploadedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drivedash_uploaded_bytes_total",
			Help: "Bytes of successfully uploaded files",
		},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drivedash_gateway_request_duration_seconds",
			Help:    "Content service request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)

	sessionValid = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drivedash_session_valid",
			Help: "1 while a non-expired session token is held",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentTransport wraps base so every gateway request is timed.
func InstrumentTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperDuration(gatewayRequestDuration, base)
}

// RecordOperation records the outcome of a user operation.
func RecordOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}

func RecordStaleRefresh() {
	staleRefreshesTotal.Inc()
}

// RecordUpload records one file sent to the upload endpoint.
func RecordUpload(bytes int64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	uploadedFilesTotal.WithLabelValues(status).Inc()
	if success {
		uploadedBytesTotal.Add(float64(bytes))
	}
}

func SetSessionValid(valid bool) {
	if valid {
		sessionValid.Set(1)
		return
	}
	sessionValid.Set(0)
}

// Serve exposes Handler on addr until the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
