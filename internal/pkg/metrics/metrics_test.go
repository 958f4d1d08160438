package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(mutations.WithLabelValues("Add Student", OutcomeSuccess))
	RecordMutation("Add Student", nil)
	RecordMutation("Add Student", errors.New("x"))

	assert.Equal(t, before+1, testutil.ToFloat64(mutations.WithLabelValues("Add Student", OutcomeSuccess)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(mutations.WithLabelValues("Add Student", OutcomeError)), 1.0)
}

func TestSetActivityLogSize(t *testing.T) {
	SetActivityLogSize(12)
	assert.Equal(t, 12.0, testutil.ToFloat64(activityLogSize))
}

func TestObserveOperation(t *testing.T) {
	ObserveOperation("students.read", time.Now(), nil)
	assert.Equal(t, 1, testutil.CollectAndCount(operationDuration, "schooladmin_api_operation_duration_seconds"))
}
