package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
)

// Options control how a per-profile AWS config is assembled.
type Options struct {
	// Profile is the shared-config profile to use. Empty means the SDK default.
	Profile string
	// ConfigFile overrides the shared config file path (`~/.aws/config`).
	ConfigFile string
	// Region overrides the region from the profile.
	Region string
	// RoleArn, when set, is assumed on top of the profile credentials.
	RoleArn string
	// AssumeRoleDuration caps the assumed-role session. Zero uses the SDK default.
	AssumeRoleDuration time.Duration
}

// LoadConfig loads an AWS config for one profile.
//
// With no options set, standard AWS SDK credential resolution applies:
// environment variables, shared credentials/config files (honoring
// AWS_PROFILE and AWS_SHARED_CREDENTIALS_FILE), IMDS, web identity tokens,
// and SSO. An explicit profile/config file narrows resolution to that profile.
func LoadConfig(ctx context.Context, opts *Options) (aws.Config, error) {
	if opts == nil {
		opts = &Options{}
	}

	var cfgOpts []func(*config.LoadOptions) error

	if opts.ConfigFile != "" {
		cfgOpts = append(cfgOpts, config.WithSharedConfigFiles([]string{opts.ConfigFile}))
	}
	if opts.Profile != "" {
		cfgOpts = append(cfgOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		log.Debug("Using explicit region", "region", opts.Region)
		cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
	}

	baseCfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		log.Debug("Failed to load AWS config", "profile", opts.Profile, "error", err)
		return aws.Config{}, fmt.Errorf("%w: %w", errUtils.ErrLoadAWSConfig, err)
	}

	// Conditionally assume role if specified.
	if opts.RoleArn != "" {
		log.Debug("Assuming role", "ARN", opts.RoleArn, "profile", opts.Profile)
		stsClient := sts.NewFromConfig(baseCfg)

		creds := stscreds.NewAssumeRoleProvider(stsClient, opts.RoleArn, func(o *stscreds.AssumeRoleOptions) {
			if opts.AssumeRoleDuration > 0 {
				o.Duration = opts.AssumeRoleDuration
			}
		})

		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(aws.NewCredentialsCache(creds)))

		// Reload full config with assumed role credentials.
		return config.LoadDefaultConfig(ctx, cfgOpts...)
	}

	return baseCfg, nil
}
