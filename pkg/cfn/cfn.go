// Package cfn wraps the CloudFormation API surface used by a drift scan:
// listing stacks and requesting drift detection.
package cfn

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"

	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
)

// API is the subset of the CloudFormation API used by the scanner.
// The interface allows us to mock the AWS CloudFormation client.
type API interface {
	ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error)
	DetectStackDrift(ctx context.Context, params *cloudformation.DetectStackDriftInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DetectStackDriftOutput, error)
}

// Client is a CloudFormation client scoped to one profile's credentials.
type Client struct {
	api API
}

// NewClient creates a client from an AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{api: cloudformation.NewFromConfig(cfg)}
}

// NewClientWithAPI creates a client from an existing API implementation.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// ListStacks returns every stack summary in the account/region, following
// pagination. Deleted stacks are included; CloudFormation reports them for
// 90 days and the evaluation policy decides what to do with them.
func (c *Client) ListStacks(ctx context.Context) ([]types.StackSummary, error) {
	var summaries []types.StackSummary
	var nextToken *string

	for {
		output, err := c.api.ListStacks(ctx, &cloudformation.ListStacksInput{
			NextToken: nextToken,
		})
		if err != nil {
			builder := errUtils.Build(errUtils.ErrListStacks).WithCause(err)
			if IsAccessDenied(err) {
				builder = builder.
					WithSentinel(errUtils.ErrAccessDenied).
					WithHint("Check IAM permissions for the cloudformation:ListStacks action")
			}
			return nil, builder.Err()
		}

		summaries = append(summaries, output.StackSummaries...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	log.Debug("Listed stacks", "count", len(summaries))
	return summaries, nil
}

// DetectStackDrift requests drift detection for one stack and returns the
// detection id. Detection runs asynchronously on the CloudFormation side;
// results are picked up on a later scan.
func (c *Client) DetectStackDrift(ctx context.Context, stackName string) (string, error) {
	output, err := c.api.DetectStackDrift(ctx, &cloudformation.DetectStackDriftInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return "", errUtils.Build(errUtils.ErrDetectStackDrift).
			WithCause(err).
			WithContext("stack", stackName).
			Err()
	}
	return aws.ToString(output.StackDriftDetectionId), nil
}

// IsAccessDenied reports whether err is an AWS access-denied error.
func IsAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation":
			return true
		}
	}
	return false
}
