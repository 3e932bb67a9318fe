// Package scanner drives a drift scan: a sequential loop over AWS profiles,
// listing CloudFormation stacks for each and applying the evaluation policy
// stack by stack.
//
// Failures are isolated per profile. Access denied on listing skips the
// profile; any other per-profile failure abandons that profile and the run
// moves on. Only the credential pre-check (run before the scanner starts)
// aborts the whole run.
package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	errUtils "github.com/cloudposse/driftwatch/errors"
	"github.com/cloudposse/driftwatch/pkg/awsprofile"
	"github.com/cloudposse/driftwatch/pkg/evaluator"
)

// Logger receives the records the scanner emits; *logger.Logger satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// StacksClient is the per-profile API surface the scanner consumes.
// *cfn.Client satisfies it.
type StacksClient interface {
	ListStacks(ctx context.Context) ([]types.StackSummary, error)
	DetectStackDrift(ctx context.Context, stackName string) (string, error)
}

// ClientFactory builds a StacksClient for one profile.
type ClientFactory func(ctx context.Context, profile awsprofile.Profile) (StacksClient, error)

// Summary aggregates what a run did, for the final log record and the
// optional structured output.
type Summary struct {
	ProfilesScanned     int `yaml:"profiles_scanned" json:"profiles_scanned"`
	ProfilesSkipped     int `yaml:"profiles_skipped" json:"profiles_skipped"`
	ProfilesFailed      int `yaml:"profiles_failed" json:"profiles_failed"`
	StacksEvaluated     int `yaml:"stacks_evaluated" json:"stacks_evaluated"`
	UnhealthyStacks     int `yaml:"unhealthy_stacks" json:"unhealthy_stacks"`
	DriftedStacks       int `yaml:"drifted_stacks" json:"drifted_stacks"`
	DetectionsRequested int `yaml:"detections_requested" json:"detections_requested"`
}

// Options configure a Scanner.
type Options struct {
	Logger    Logger
	Profiles  []awsprofile.Profile
	NewClient ClientFactory

	// Evaluation policy; zero values fall back to the evaluator defaults.
	HealthyStatuses        []types.StackStatus
	DriftCheckableStatuses []types.StackStatus
	MaxDriftAge            time.Duration
	DryRun                 bool

	// Now is the clock used for drift-age checks. Defaults to time.Now.
	Now func() time.Time
}

// Scanner runs the profile loop. Single-threaded by design: profiles one at
// a time, stacks within a profile one at a time, so log ordering follows
// scan ordering.
type Scanner struct {
	logger    Logger
	profiles  []awsprofile.Profile
	newClient ClientFactory

	healthyStatuses        []types.StackStatus
	driftCheckableStatuses []types.StackStatus
	maxDriftAge            time.Duration
	dryRun                 bool

	now func() time.Time
}

// New creates a Scanner from options.
func New(opts *Options) *Scanner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scanner{
		logger:                 opts.Logger,
		profiles:               opts.Profiles,
		newClient:              opts.NewClient,
		healthyStatuses:        opts.HealthyStatuses,
		driftCheckableStatuses: opts.DriftCheckableStatuses,
		maxDriftAge:            opts.MaxDriftAge,
		dryRun:                 opts.DryRun,
		now:                    now,
	}
}

// Run executes the scan. It returns an error only when the context is
// canceled; per-profile failures are logged, counted in the summary, and
// never abort the remaining profiles.
func (s *Scanner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	if len(s.profiles) == 0 {
		s.logger.Warn("No profiles to scan")
		return summary, nil
	}

	for _, profile := range s.profiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.scanProfile(ctx, profile, summary); err != nil {
			return summary, err
		}
	}

	s.logger.Info("Scan complete",
		"profiles_scanned", summary.ProfilesScanned,
		"profiles_skipped", summary.ProfilesSkipped,
		"profiles_failed", summary.ProfilesFailed,
		"stacks_evaluated", summary.StacksEvaluated,
		"unhealthy", summary.UnhealthyStacks,
		"drifted", summary.DriftedStacks,
		"detections_requested", summary.DetectionsRequested,
	)
	return summary, nil
}

// scanProfile processes one profile. The returned error is non-nil only for
// context cancellation; everything else is recorded in the summary.
func (s *Scanner) scanProfile(ctx context.Context, profile awsprofile.Profile, summary *Summary) error {
	s.logger.Debug("Scanning profile", "profile", profile.Name, "region", profile.Region)

	client, err := s.newClient(ctx, profile)
	if err != nil {
		summary.ProfilesFailed++
		s.logger.Error("Failed to initialize profile session",
			"profile", profile.Name, "error", err)
		return nil
	}

	stacks, err := client.ListStacks(ctx)
	if err != nil {
		if errors.Is(err, errUtils.ErrAccessDenied) {
			summary.ProfilesSkipped++
			s.logger.Error("Access denied listing stacks, skipping profile",
				"profile", profile.Name)
			return nil
		}
		summary.ProfilesFailed++
		s.logger.Error("Failed to list stacks",
			"profile", profile.Name, "error", err)
		return nil
	}

	eval := evaluator.New(&evaluator.Options{
		Logger:                 s.logger,
		Detector:               client,
		HealthyStatuses:        s.healthyStatuses,
		DriftCheckableStatuses: s.driftCheckableStatuses,
		MaxDriftAge:            s.maxDriftAge,
		DryRun:                 s.dryRun,
	})

	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := eval.Evaluate(ctx, profile.Name, stack, s.now())
		if err != nil {
			// Drift-request failure abandons the rest of this profile;
			// the remaining profiles still run.
			summary.ProfilesFailed++
			s.logger.Error("Drift detection request failed, abandoning profile",
				"profile", profile.Name, "stack", result.Stack, "error", err)
			return nil
		}

		summary.StacksEvaluated++
		if result.Unhealthy {
			summary.UnhealthyStacks++
		}
		if result.Drifted {
			summary.DriftedStacks++
		}
		if result.DriftRequested {
			summary.DetectionsRequested++
		}
	}

	summary.ProfilesScanned++
	return nil
}
