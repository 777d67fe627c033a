package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbin_records_saved_total",
		Help: "Captured requests persisted by the log store",
	}, []string{"method"})

	RecordsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbin_records_evicted_total",
		Help: "Records dropped by capacity truncation",
	})

	RecordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbin_records_deleted_total",
		Help: "Records removed through the delete operation",
	})

	MalformedBodies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbin_malformed_bodies_total",
		Help: "JSON bodies that failed to parse and were stored as null",
	})

	CollectionSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "logbin_collection_size",
		Help: "Current number of records in the collection",
	}, []string{"instance"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "logbin_request_duration_seconds",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// MethodLabel maps a client-supplied HTTP method onto a fixed label set.
// Captured methods are free-form, so anything unknown becomes "other".
func MethodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions:
		return method
	default:
		return "other"
	}
}
