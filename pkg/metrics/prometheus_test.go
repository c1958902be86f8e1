package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordComparison("annual", 3)
	r.RecordComparison("annual", 9)
	r.RecordFetch("provider", "ok")
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)
	r.RecordWarning("INVALID_CALENDAR_YEAR")
	r.RecordError("provider")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.comparisons.WithLabelValues("annual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("provider", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.warnings.WithLabelValues("INVALID_CALENDAR_YEAR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("provider")))
}
