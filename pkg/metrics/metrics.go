package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultPresent = "present"
	ResultAbsent  = "absent"
)

// Metrics for monitoring
var (
	Conversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "romanizer_conversions_total",
		Help: "The total number of decimal to roman conversions by result",
	}, []string{"result"})

	ConversionTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "romanizer_conversion_seconds",
		Help:    "Time taken to convert a single decimal",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10), // Start at 100ns with 10 buckets quadrupling in size
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "romanizer_http_requests_total",
		Help: "The total number of HTTP requests by handler and status code",
	}, []string{"handler", "code"})

	RangeSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "romanizer_range_size",
		Help:    "Number of conversions returned by range requests",
		Buckets: prometheus.ExponentialBuckets(1, 4, 7),
	})
)

// ResultLabel returns the conversions result label for a presence flag
func ResultLabel(present bool) string {
	if present {
		return ResultPresent
	}
	return ResultAbsent
}
