package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/beats", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/beats", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordCheckout(t *testing.T) {
	CheckoutsTotal.Reset()

	RecordCheckout("paid")
	RecordCheckout("paid")
	RecordCheckout("insufficient_funds")
	RecordCheckout("failed")

	paid := testutil.ToFloat64(CheckoutsTotal.WithLabelValues("paid"))
	insufficient := testutil.ToFloat64(CheckoutsTotal.WithLabelValues("insufficient_funds"))
	failed := testutil.ToFloat64(CheckoutsTotal.WithLabelValues("failed"))

	assert.Equal(t, float64(2), paid)
	assert.Equal(t, float64(1), insufficient)
	assert.Equal(t, float64(1), failed)
}

func TestRecordExclusiveGrant(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beatmarket_exclusive_grants_total_test",
			Help: "Total number of exclusive ownership transfers",
		},
	)

	oldCounter := ExclusiveGrantsTotal
	ExclusiveGrantsTotal = testCounter
	defer func() { ExclusiveGrantsTotal = oldCounter }()

	RecordExclusiveGrant()
	RecordExclusiveGrant()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordWalletDeposit(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beatmarket_wallet_deposits_total_test",
			Help: "Total number of wallet deposits",
		},
	)

	oldCounter := WalletDepositsTotal
	WalletDepositsTotal = testCounter
	defer func() { WalletDepositsTotal = oldCounter }()

	RecordWalletDeposit()
	RecordWalletDeposit()
	RecordWalletDeposit()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(3), count)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("order_confirmation", "success")
	RecordEmail("order_confirmation", "failed")
	RecordEmail("deposit_receipt", "success")

	confirmSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("order_confirmation", "success"))
	confirmFailed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("order_confirmation", "failed"))
	receiptSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("deposit_receipt", "success"))

	assert.Equal(t, float64(1), confirmSuccess)
	assert.Equal(t, float64(1), confirmFailed)
	assert.Equal(t, float64(1), receiptSuccess)
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}
