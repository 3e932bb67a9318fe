package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors shared across driftwatch packages. Callers wrap these with
// %w so errors.Is works across package boundaries.
var (
	// AWS SDK / session errors.
	ErrLoadAWSConfig     = errors.New("failed to load AWS SDK config")
	ErrGetCallerIdentity = errors.New("failed to get AWS caller identity")

	// Credential pre-check errors. These carry the distinct process exit
	// codes below when returned from the scan command.
	ErrExpiredCredentials = errors.New("monitoring credentials are expired or invalid")
	ErrSTSUnreachable     = errors.New("unable to reach the STS endpoint to validate credentials")

	// CloudFormation API errors.
	ErrListStacks       = errors.New("failed to list CloudFormation stacks")
	ErrDetectStackDrift = errors.New("failed to start stack drift detection")
	ErrAccessDenied     = errors.New("access denied")

	// Profile source errors.
	ErrLoadProfiles = errors.New("failed to load AWS shared config profiles")

	// Tool configuration errors.
	ErrInvalidConfig       = errors.New("invalid driftwatch configuration")
	ErrInvalidProfileGlob  = errors.New("invalid profile filter pattern")
	ErrInvalidStackStatus  = errors.New("invalid CloudFormation stack status")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Process exit codes. The credential pre-check distinguishes expired
// credentials from an unreachable validation endpoint so alerting pipelines
// can tell "rotate the credential" from "network problem".
const (
	ExitCodeOK                 = 0
	ExitCodeExpiredCredentials = 1
	ExitCodeSTSUnreachable     = 2
)
