package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("devices", "GET", "200"))

	RecordRequest("devices", "GET", 200, 15*time.Millisecond)
	RecordRequest("devices", "GET", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("devices", "GET", "200"))
	assert.Equal(t, before+2, after)
}
