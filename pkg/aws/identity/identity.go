package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
)

// CallerIdentity holds the information returned by AWS STS GetCallerIdentity.
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

// STSAPI is the subset of the AWS STS API used by the credential pre-check.
// This interface enables dependency injection and testability.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// NewSTSClient creates an STS client from an AWS config.
func NewSTSClient(cfg aws.Config) STSAPI {
	return sts.NewFromConfig(cfg)
}

// GetCallerIdentity retrieves the AWS caller identity using the STS
// GetCallerIdentity API.
func GetCallerIdentity(ctx context.Context, client STSAPI) (*CallerIdentity, error) {
	log.Debug("Getting AWS caller identity")

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrGetCallerIdentity).WithCause(err).Err()
	}

	identity := &CallerIdentity{
		Account: aws.ToString(output.Account),
		Arn:     aws.ToString(output.Arn),
		UserID:  aws.ToString(output.UserId),
	}

	log.Debug("Retrieved AWS caller identity",
		"account", identity.Account,
		"arn", identity.Arn,
		"user_id", identity.UserID,
	)

	return identity, nil
}

// Verify runs the credential pre-check that gates a scan run.
// A failure is classified so the caller exits with the right code:
// expired/invalid credentials or an unreachable STS endpoint.
func Verify(ctx context.Context, client STSAPI) (*CallerIdentity, error) {
	identity, err := GetCallerIdentity(ctx, client)
	if err != nil {
		return nil, classifyCredentialError(err)
	}
	return identity, nil
}

// expiredTokenCodes are the STS error codes that indicate the monitoring
// credentials themselves are expired or invalid, as opposed to the endpoint
// being unreachable.
var expiredTokenCodes = map[string]struct{}{
	"ExpiredToken":          {},
	"ExpiredTokenException": {},
	"RequestExpired":        {},
	"InvalidClientTokenId":  {},
	"TokenRefreshRequired":  {},
	"SignatureDoesNotMatch": {},
}

func classifyCredentialError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := expiredTokenCodes[apiErr.ErrorCode()]; ok {
			return errUtils.Build(errUtils.ErrExpiredCredentials).
				WithCause(err).
				WithHint("Refresh the monitoring credentials (`aws sso login`, or rotate the access keys) and re-run").
				WithExitCode(errUtils.ExitCodeExpiredCredentials).
				Err()
		}
	}
	return errUtils.Build(errUtils.ErrSTSUnreachable).
		WithCause(err).
		WithHint("Check network connectivity to the AWS STS endpoint").
		WithExitCode(errUtils.ExitCodeSTSUnreachable).
		Err()
}
