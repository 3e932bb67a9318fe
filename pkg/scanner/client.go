package scanner

import (
	"context"

	"github.com/cloudposse/driftwatch/pkg/aws/identity"
	"github.com/cloudposse/driftwatch/pkg/awsprofile"
	"github.com/cloudposse/driftwatch/pkg/cfn"
)

// DefaultClientFactory builds per-profile CloudFormation clients with
// credentials resolved from the shared config file. An explicit region
// overrides the profile's own; roleArn, when set, is assumed on top of the
// profile credentials.
func DefaultClientFactory(configFile string, region string, roleArn string) ClientFactory {
	return func(ctx context.Context, profile awsprofile.Profile) (StacksClient, error) {
		cfg, err := identity.LoadConfig(ctx, &identity.Options{
			Profile:    profile.Name,
			ConfigFile: configFile,
			Region:     region,
			RoleArn:    roleArn,
		})
		if err != nil {
			return nil, err
		}
		return cfn.NewClient(cfg), nil
	}
}
