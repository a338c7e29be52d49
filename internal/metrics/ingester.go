package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockpulse",
		Subsystem: "history_ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single block height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockpulse",
		Subsystem: "history_ingester",
		Name:      "process_batch_total",
		Help:      "Count of persisted block batches.",
	}, []string{"network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockpulse",
		Subsystem: "history_ingester",
		Name:      "process_batch_size",
		Help:      "Number of blocks persisted per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	ingesterLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockpulse",
		Subsystem: "history_ingester",
		Name:      "last_ingested_height",
		Help:      "Highest block height successfully ingested.",
	}, []string{"network"})
)

// HistoryIngester tracks ingestion progress metrics.
type HistoryIngester struct {
	network string
}

// NewHistoryIngester creates a HistoryIngester metrics collector.
func NewHistoryIngester(network string) *HistoryIngester {
	if network == "" {
		network = "unknown"
	}
	return &HistoryIngester{network: network}
}

// ObserveProcessHeight records the outcome of processing one height.
func (m HistoryIngester) ObserveProcessHeight(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessHeightDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records a persisted batch and its size.
func (m HistoryIngester) ObserveProcessBatch(err error, blocks int) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessBatchTotal.WithLabelValues(m.network, status).Inc()
	ingesterProcessBatchSize.WithLabelValues(m.network).Observe(float64(blocks))
}

// SetLastHeight publishes the highest ingested height.
func (m HistoryIngester) SetLastHeight(height uint64) {
	ingesterLastHeight.WithLabelValues(m.network).Set(float64(height))
}
