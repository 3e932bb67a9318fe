// Package evaluator implements the stack-health and drift evaluation policy.
//
// For each stack summary the evaluator decides one of: no action, log
// unhealthy, request drift detection, or log the drift result. The rules
// apply in a fixed order and the first match wins, except the unhealthy
// record, which never stops evaluation on its own.
package evaluator

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// Logger receives the records the evaluator emits. It is injected rather
// than taken from package-global state so tests can capture the records;
// *logger.Logger satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// DriftDetector requests drift detection for one stack.
// *cfn.Client satisfies it.
type DriftDetector interface {
	DetectStackDrift(ctx context.Context, stackName string) (string, error)
}

// Result records what the evaluation of one stack did.
type Result struct {
	Stack          string
	Unhealthy      bool
	DriftRequested bool
	Drifted        bool
	// DetectionID is set when a detection was actually requested (not dry-run).
	DetectionID string
}

// Evaluator applies the evaluation policy with a fixed configuration.
type Evaluator struct {
	logger         Logger
	detector       DriftDetector
	healthy        map[types.StackStatus]struct{}
	driftCheckable map[types.StackStatus]struct{}
	maxDriftAge    time.Duration
	dryRun         bool
}

// Options configure an Evaluator. Logger and Detector are required;
// zero-valued status sets and age fall back to the defaults.
type Options struct {
	Logger                 Logger
	Detector               DriftDetector
	HealthyStatuses        []types.StackStatus
	DriftCheckableStatuses []types.StackStatus
	MaxDriftAge            time.Duration
	// DryRun logs the detections that would be requested without calling the API.
	DryRun bool
}

// New creates an Evaluator from options.
func New(opts *Options) *Evaluator {
	healthy := opts.HealthyStatuses
	if len(healthy) == 0 {
		healthy = DefaultHealthyStatuses
	}
	checkable := opts.DriftCheckableStatuses
	if len(checkable) == 0 {
		checkable = DefaultDriftCheckableStatuses
	}
	maxAge := opts.MaxDriftAge
	if maxAge <= 0 {
		maxAge = DefaultMaxDriftAge
	}

	return &Evaluator{
		logger:         opts.Logger,
		detector:       opts.Detector,
		healthy:        statusSet(healthy),
		driftCheckable: statusSet(checkable),
		maxDriftAge:    maxAge,
		dryRun:         opts.DryRun,
	}
}

// Evaluate applies the policy to one stack summary at the given time.
// The profile tags every emitted record alongside the stack name.
func (e *Evaluator) Evaluate(ctx context.Context, profile string, summary types.StackSummary, now time.Time) (Result, error) {
	stackName := aws.ToString(summary.StackName)
	result := Result{Stack: stackName}
	status := summary.StackStatus

	// Deleted stacks linger in ListStacks output for 90 days; nothing to do.
	if status == types.StackStatusDeleteComplete {
		return result, nil
	}

	if _, ok := e.healthy[status]; !ok {
		result.Unhealthy = true
		e.logger.Error("Stack is not in a healthy state",
			"profile", profile, "stack", stackName, "status", status)
	}

	if _, ok := e.driftCheckable[status]; !ok {
		return result, nil
	}

	drift := summary.DriftInformation
	if drift == nil || drift.StackDriftStatus == types.StackDriftStatusNotChecked {
		err := e.requestDetection(ctx, profile, &result, "drift never checked")
		return result, err
	}

	if drift.LastCheckTimestamp != nil && now.Sub(*drift.LastCheckTimestamp) > e.maxDriftAge {
		err := e.requestDetection(ctx, profile, &result, "drift information stale")
		return result, err
	}

	switch drift.StackDriftStatus {
	case types.StackDriftStatusInSync:
	case types.StackDriftStatusDrifted:
		result.Drifted = true
		e.logger.Info("Stack has drifted",
			"profile", profile, "stack", stackName,
			"last_checked", aws.ToTime(drift.LastCheckTimestamp))
	default:
		e.logger.Debug("Unexpected drift status",
			"profile", profile, "stack", stackName,
			"drift_status", drift.StackDriftStatus,
			"last_checked", aws.ToTime(drift.LastCheckTimestamp))
	}

	return result, nil
}

func (e *Evaluator) requestDetection(ctx context.Context, profile string, result *Result, reason string) error {
	if e.dryRun {
		result.DriftRequested = true
		e.logger.Info("Would request drift detection",
			"profile", profile, "stack", result.Stack, "reason", reason)
		return nil
	}

	id, err := e.detector.DetectStackDrift(ctx, result.Stack)
	if err != nil {
		return err
	}

	result.DriftRequested = true
	result.DetectionID = id
	e.logger.Info("Requested drift detection",
		"profile", profile, "stack", result.Stack,
		"reason", reason, "detection_id", id)
	return nil
}

func statusSet(statuses []types.StackStatus) map[types.StackStatus]struct{} {
	set := make(map[types.StackStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}
