package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatmarket_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beatmarket_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatmarket_checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"status"},
	)

	CheckoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "beatmarket_checkout_amount",
			Help:    "Order totals of successful checkouts",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ExclusiveGrantsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beatmarket_exclusive_grants_total",
			Help: "Total number of exclusive ownership transfers",
		},
	)

	WalletDepositsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beatmarket_wallet_deposits_total",
			Help: "Total number of wallet deposits",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatmarket_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "beatmarket_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckout(status string) {
	CheckoutsTotal.WithLabelValues(status).Inc()
}

func RecordCheckoutAmount(amount float64) {
	CheckoutAmount.Observe(amount)
}

func RecordExclusiveGrant() {
	ExclusiveGrantsTotal.Inc()
}

func RecordWalletDeposit() {
	WalletDepositsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
