package evaluator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/driftwatch/errors"
)

type record struct {
	level   string
	msg     string
	keyvals []interface{}
}

// recordingLogger captures emitted records for assertions.
type recordingLogger struct {
	records []record
}

func (l *recordingLogger) Debug(msg interface{}, keyvals ...interface{}) {
	l.add("debug", msg, keyvals)
}

func (l *recordingLogger) Info(msg interface{}, keyvals ...interface{}) {
	l.add("info", msg, keyvals)
}

func (l *recordingLogger) Error(msg interface{}, keyvals ...interface{}) {
	l.add("error", msg, keyvals)
}

func (l *recordingLogger) add(level string, msg interface{}, keyvals []interface{}) {
	l.records = append(l.records, record{level: level, msg: fmt.Sprintf("%v", msg), keyvals: keyvals})
}

func (l *recordingLogger) byLevel(level string) []record {
	var out []record
	for _, r := range l.records {
		if r.level == level {
			out = append(out, r)
		}
	}
	return out
}

func (r record) hasField(key string, value interface{}) bool {
	for i := 0; i+1 < len(r.keyvals); i += 2 {
		if r.keyvals[i] == key && r.keyvals[i+1] == value {
			return true
		}
	}
	return false
}

// mockDetector is a test implementation of DriftDetector.
type mockDetector struct {
	id    string
	err   error
	calls []string
}

func (m *mockDetector) DetectStackDrift(ctx context.Context, stackName string) (string, error) {
	m.calls = append(m.calls, stackName)
	if m.err != nil {
		return "", m.err
	}
	return m.id, nil
}

func newTestEvaluator(opts *Options) (*Evaluator, *recordingLogger, *mockDetector) {
	logger := &recordingLogger{}
	detector := &mockDetector{id: "detection-1"}
	if opts == nil {
		opts = &Options{}
	}
	opts.Logger = logger
	opts.Detector = detector
	return New(opts), logger, detector
}

func stack(name string, status types.StackStatus, drift *types.StackDriftInformationSummary) types.StackSummary {
	return types.StackSummary{
		StackName:        aws.String(name),
		StackStatus:      status,
		DriftInformation: drift,
	}
}

func driftInfo(status types.StackDriftStatus, lastChecked time.Time) *types.StackDriftInformationSummary {
	info := &types.StackDriftInformationSummary{StackDriftStatus: status}
	if !lastChecked.IsZero() {
		info.LastCheckTimestamp = aws.Time(lastChecked)
	}
	return info
}

func TestEvaluateDeletedStackSilentlySkipped(t *testing.T) {
	e, logger, detector := newTestEvaluator(nil)

	result, err := e.Evaluate(context.Background(), "prod",
		stack("gone", types.StackStatusDeleteComplete, nil), time.Now())

	require.NoError(t, err)
	assert.Empty(t, logger.records)
	assert.Empty(t, detector.calls)
	assert.False(t, result.Unhealthy)
	assert.False(t, result.DriftRequested)
}

func TestEvaluateUnhealthyStackLogsError(t *testing.T) {
	e, logger, detector := newTestEvaluator(nil)

	result, err := e.Evaluate(context.Background(), "prod",
		stack("broken", types.StackStatusRollbackFailed, nil), time.Now())

	require.NoError(t, err)
	assert.True(t, result.Unhealthy)

	errorRecords := logger.byLevel("error")
	require.Len(t, errorRecords, 1)
	assert.True(t, errorRecords[0].hasField("stack", "broken"))
	assert.True(t, errorRecords[0].hasField("profile", "prod"))

	// ROLLBACK_FAILED is not drift-checkable: no drift evaluation, no API call.
	assert.Empty(t, detector.calls)
	assert.False(t, result.DriftRequested)
}

func TestEvaluateRequestsDetectionWhenNeverChecked(t *testing.T) {
	tests := []struct {
		name  string
		drift *types.StackDriftInformationSummary
	}{
		{name: "drift information absent", drift: nil},
		{name: "drift status NOT_CHECKED", drift: driftInfo(types.StackDriftStatusNotChecked, time.Time{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, logger, detector := newTestEvaluator(nil)

			result, err := e.Evaluate(context.Background(), "prod",
				stack("network", types.StackStatusCreateComplete, tt.drift), time.Now())

			require.NoError(t, err)
			assert.Equal(t, []string{"network"}, detector.calls)
			assert.True(t, result.DriftRequested)
			assert.Equal(t, "detection-1", result.DetectionID)
			require.Len(t, logger.byLevel("info"), 1)
		})
	}
}

func TestEvaluateRequestsDetectionWhenStale(t *testing.T) {
	e, _, detector := newTestEvaluator(&Options{MaxDriftAge: 48 * time.Hour})
	now := time.Now()

	// IN_SYNC but checked three days ago: stale wins over the in-sync status.
	result, err := e.Evaluate(context.Background(), "prod",
		stack("data", types.StackStatusUpdateComplete,
			driftInfo(types.StackDriftStatusInSync, now.Add(-72*time.Hour))), now)

	require.NoError(t, err)
	assert.Equal(t, []string{"data"}, detector.calls)
	assert.True(t, result.DriftRequested)
}

func TestEvaluateFreshAtMaxAgeBoundaryNotStale(t *testing.T) {
	e, logger, detector := newTestEvaluator(&Options{MaxDriftAge: 48 * time.Hour})
	now := time.Now()

	result, err := e.Evaluate(context.Background(), "prod",
		stack("data", types.StackStatusUpdateComplete,
			driftInfo(types.StackDriftStatusInSync, now.Add(-48*time.Hour))), now)

	require.NoError(t, err)
	assert.Empty(t, detector.calls)
	assert.Empty(t, logger.records)
	assert.False(t, result.DriftRequested)
}

func TestEvaluateDriftedLogsInfo(t *testing.T) {
	e, logger, detector := newTestEvaluator(nil)
	now := time.Now()

	result, err := e.Evaluate(context.Background(), "prod",
		stack("app", types.StackStatusUpdateComplete,
			driftInfo(types.StackDriftStatusDrifted, now.Add(-time.Hour))), now)

	require.NoError(t, err)
	assert.True(t, result.Drifted)
	assert.Empty(t, detector.calls)

	infoRecords := logger.byLevel("info")
	require.Len(t, infoRecords, 1)
	assert.True(t, infoRecords[0].hasField("stack", "app"))
	assert.Empty(t, logger.byLevel("error"))
}

func TestEvaluateInSyncNoAction(t *testing.T) {
	e, logger, detector := newTestEvaluator(nil)
	now := time.Now()

	result, err := e.Evaluate(context.Background(), "prod",
		stack("app", types.StackStatusCreateComplete,
			driftInfo(types.StackDriftStatusInSync, now.Add(-time.Hour))), now)

	require.NoError(t, err)
	assert.Empty(t, logger.records)
	assert.Empty(t, detector.calls)
	assert.Equal(t, Result{Stack: "app"}, result)
}

func TestEvaluateUnknownDriftStatusDiagnostic(t *testing.T) {
	e, logger, detector := newTestEvaluator(nil)
	now := time.Now()

	_, err := e.Evaluate(context.Background(), "prod",
		stack("app", types.StackStatusCreateComplete,
			driftInfo(types.StackDriftStatusUnknown, now.Add(-time.Hour))), now)

	require.NoError(t, err)
	assert.Empty(t, detector.calls)

	debugRecords := logger.byLevel("debug")
	require.Len(t, debugRecords, 1)
	assert.True(t, debugRecords[0].hasField("stack", "app"))
}

func TestEvaluateUnhealthyButCheckableContinues(t *testing.T) {
	// With a custom policy where UPDATE_COMPLETE is checkable but not
	// healthy, the unhealthy record is emitted and evaluation continues
	// into the drift rules.
	e, logger, detector := newTestEvaluator(&Options{
		HealthyStatuses:        []types.StackStatus{types.StackStatusCreateComplete},
		DriftCheckableStatuses: []types.StackStatus{types.StackStatusCreateComplete, types.StackStatusUpdateComplete},
	})

	result, err := e.Evaluate(context.Background(), "prod",
		stack("app", types.StackStatusUpdateComplete, nil), time.Now())

	require.NoError(t, err)
	assert.True(t, result.Unhealthy)
	assert.True(t, result.DriftRequested)
	require.Len(t, logger.byLevel("error"), 1)
	assert.Equal(t, []string{"app"}, detector.calls)
}

func TestEvaluateGateStopsBeforeDriftRules(t *testing.T) {
	// REVIEW_IN_PROGRESS is healthy but not drift-checkable: the checkable
	// gate stops evaluation before the never-checked rule can request
	// detection.
	e, logger, detector := newTestEvaluator(nil)

	result, err := e.Evaluate(context.Background(), "prod",
		stack("pending", types.StackStatusReviewInProgress, nil), time.Now())

	require.NoError(t, err)
	assert.Empty(t, detector.calls)
	assert.Empty(t, logger.records)
	assert.False(t, result.DriftRequested)
}

func TestEvaluateDryRunSkipsAPICall(t *testing.T) {
	e, logger, detector := newTestEvaluator(&Options{DryRun: true})

	result, err := e.Evaluate(context.Background(), "prod",
		stack("network", types.StackStatusCreateComplete, nil), time.Now())

	require.NoError(t, err)
	assert.Empty(t, detector.calls)
	assert.True(t, result.DriftRequested)
	assert.Empty(t, result.DetectionID)
	require.Len(t, logger.byLevel("info"), 1)
}

func TestEvaluateDetectorErrorPropagates(t *testing.T) {
	e, _, detector := newTestEvaluator(nil)
	detector.err = errors.New("throttled")

	result, err := e.Evaluate(context.Background(), "prod",
		stack("network", types.StackStatusCreateComplete, nil), time.Now())

	require.Error(t, err)
	assert.False(t, result.DriftRequested)
}

func TestParseStackStatuses(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []types.StackStatus
		wantErr bool
	}{
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
		{
			name:  "valid statuses",
			input: []string{"CREATE_COMPLETE", "UPDATE_COMPLETE"},
			want:  []types.StackStatus{types.StackStatusCreateComplete, types.StackStatusUpdateComplete},
		},
		{
			name:  "lowercase normalized",
			input: []string{"create_complete"},
			want:  []types.StackStatus{types.StackStatusCreateComplete},
		},
		{
			name:    "unknown status",
			input:   []string{"TOTALLY_BROKEN"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStackStatuses(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errUtils.ErrInvalidStackStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
