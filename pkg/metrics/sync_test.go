package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	before := testutil.ToFloat64(get().rowsWritten.WithLabelValues("append"))

	AddRowsWritten("append", 3)
	AddRowsWritten("append", 0)
	assert.Equal(t, before+3, testutil.ToFloat64(get().rowsWritten.WithLabelValues("append")))

	skippedBefore := testutil.ToFloat64(get().rowsSkipped.WithLabelValues("invalid_date"))
	IncRowsSkipped("invalid_date")
	assert.Equal(t, skippedBefore+1, testutil.ToFloat64(get().rowsSkipped.WithLabelValues("invalid_date")))

	runsBefore := testutil.ToFloat64(get().runsTotal.WithLabelValues("replace", "error"))
	ObserveRun("replace", "error", 2*time.Second)
	assert.Equal(t, runsBefore+1, testutil.ToFloat64(get().runsTotal.WithLabelValues("replace", "error")))
}

func TestAddRowsSkipped(t *testing.T) {
	before := testutil.ToFloat64(get().rowsSkipped.WithLabelValues("out_of_range"))

	AddRowsSkipped("out_of_range", 4)
	AddRowsSkipped("out_of_range", 0)

	assert.Equal(t, before+4, testutil.ToFloat64(get().rowsSkipped.WithLabelValues("out_of_range")))
}
