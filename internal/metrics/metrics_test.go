package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/users", "200", 0.2)
	RecordHTTPRequest("GET", "/api/users", "200", 0.1)
	RecordHTTPRequest("GET", "/api/users", "500", 0.1)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/users", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/users", "500")))
}

func TestRecordAdjustment(t *testing.T) {
	BalanceAdjustmentsTotal.Reset()

	RecordAdjustment("add", "ok")
	RecordAdjustment("deduct", "insufficient_balance")

	assert.Equal(t, float64(1), testutil.ToFloat64(BalanceAdjustmentsTotal.WithLabelValues("add", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BalanceAdjustmentsTotal.WithLabelValues("deduct", "insufficient_balance")))
}

func TestRecordSave(t *testing.T) {
	SnapshotSavesTotal.Reset()
	RegisteredUsers.Set(0)

	RecordSave("file", nil, 3)
	RecordSave("file", errors.New("disk full"), 5)

	assert.Equal(t, float64(1), testutil.ToFloat64(SnapshotSavesTotal.WithLabelValues("file", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(SnapshotSavesTotal.WithLabelValues("file", "error")))
	assert.Equal(t, float64(3), testutil.ToFloat64(RegisteredUsers))
}
