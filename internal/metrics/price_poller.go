package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pricePollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockpulse",
		Subsystem: "price_poller",
		Name:      "polls_total",
		Help:      "Count of spot price poll attempts.",
	}, []string{"currency", "status"})

	pricePollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockpulse",
		Subsystem: "price_poller",
		Name:      "poll_duration_seconds",
		Help:      "Duration of spot price poll attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"currency", "status"})

	priceLastValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockpulse",
		Subsystem: "price_poller",
		Name:      "last_price",
		Help:      "Most recently observed spot price.",
	}, []string{"currency"})
)

// PricePoller tracks spot price polling metrics.
type PricePoller struct {
	currency string
}

// NewPricePoller creates a PricePoller metrics collector.
func NewPricePoller(currency string) *PricePoller {
	if currency == "" {
		currency = "unknown"
	}
	return &PricePoller{currency: currency}
}

// ObservePoll records the outcome and duration of one poll attempt.
func (m PricePoller) ObservePoll(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	pricePollTotal.WithLabelValues(m.currency, status).Inc()
	pricePollDuration.WithLabelValues(m.currency, status).Observe(time.Since(started).Seconds())
}

// SetLastPrice publishes the most recent spot price.
func (m PricePoller) SetLastPrice(price float64) {
	priceLastValue.WithLabelValues(m.currency).Set(price)
}
