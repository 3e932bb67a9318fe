package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errUtils "github.com/cloudposse/driftwatch/errors"
	"github.com/cloudposse/driftwatch/pkg/aws/identity"
	"github.com/cloudposse/driftwatch/pkg/awsprofile"
	"github.com/cloudposse/driftwatch/pkg/evaluator"
	log "github.com/cloudposse/driftwatch/pkg/logger"
	"github.com/cloudposse/driftwatch/pkg/scanner"
	u "github.com/cloudposse/driftwatch/pkg/utils"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the configured AWS profiles for unhealthy and drifted stacks",
	Long: `Scan runs the credential pre-check, then iterates over the AWS profiles in
the shared config file. For each profile it lists the CloudFormation stacks,
flags stacks that are not in a healthy state, and requests drift detection
for stacks whose drift information is missing, never checked, or stale.`,
	Example: "  driftwatch scan\n" +
		"  driftwatch scan --profiles 'prod-*' --exclude-profiles prod-sandbox\n" +
		"  driftwatch scan --max-drift-age 24h --dry-run\n" +
		"  driftwatch scan --output json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execScan(cmd.Context(), cmd)
	},
}

func init() {
	scanCmd.Flags().String("aws-config", "", "Path to the AWS shared config file enumerating the profiles (defaults to ~/.aws/config, honoring AWS_CONFIG_FILE)")
	scanCmd.Flags().StringSlice("profiles", nil, "Glob patterns selecting the profiles to scan (default: all)")
	scanCmd.Flags().StringSlice("exclude-profiles", nil, "Glob patterns excluding profiles from the scan")
	scanCmd.Flags().String("region", "", "AWS region override for every profile")
	scanCmd.Flags().String("role-arn", "", "IAM role to assume on top of each profile's credentials")
	scanCmd.Flags().Duration("max-drift-age", 0, "How old a drift check may be before the stack is re-checked (default 48h)")
	scanCmd.Flags().Bool("dry-run", false, "Log the drift detections that would be requested without calling the API")
	scanCmd.Flags().String("output", "", "Print the run summary in the given format: json or yaml")
	scanCmd.Flags().String("report-file", "", "Write the run summary as a JSON report to the given file")
	RootCmd.AddCommand(scanCmd)
}

func execScan(ctx context.Context, cmd *cobra.Command) error {
	flags := cmd.Flags()

	scanCfg := cliConfig.Scan
	awsCfg := cliConfig.AWS

	if flags.Changed("profiles") {
		scanCfg.Profiles, _ = flags.GetStringSlice("profiles")
	}
	if flags.Changed("exclude-profiles") {
		scanCfg.ExcludeProfiles, _ = flags.GetStringSlice("exclude-profiles")
	}
	if flags.Changed("dry-run") {
		scanCfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("output") {
		scanCfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("report-file") {
		scanCfg.ReportFile, _ = flags.GetString("report-file")
	}
	if flags.Changed("aws-config") {
		awsCfg.ConfigFile, _ = flags.GetString("aws-config")
	}
	if flags.Changed("region") {
		awsCfg.Region, _ = flags.GetString("region")
	}
	if flags.Changed("role-arn") {
		awsCfg.RoleArn, _ = flags.GetString("role-arn")
	}

	if scanCfg.Output != "" && scanCfg.Output != formatJSON && scanCfg.Output != formatYAML {
		return errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithContext("output", scanCfg.Output).
			WithHint("Supported formats: json, yaml").
			Err()
	}

	maxDriftAge, err := resolveMaxDriftAge(flags, scanCfg.MaxDriftAge)
	if err != nil {
		return err
	}

	healthy, err := evaluator.ParseStackStatuses(scanCfg.HealthyStatuses)
	if err != nil {
		return err
	}
	checkable, err := evaluator.ParseStackStatuses(scanCfg.DriftCheckableStatuses)
	if err != nil {
		return err
	}

	configFile, err := resolveAWSConfigFile(awsCfg.ConfigFile)
	if err != nil {
		return err
	}

	// The credential pre-check gates the entire run: no per-profile work
	// happens on expired credentials or an unreachable STS endpoint.
	preCfg, err := identity.LoadConfig(ctx, &identity.Options{
		ConfigFile: configFile,
		Region:     awsCfg.Region,
	})
	if err != nil {
		return err
	}
	caller, err := identity.Verify(ctx, identity.NewSTSClient(preCfg))
	if err != nil {
		return err
	}
	log.Debug("Credential pre-check passed", "account", caller.Account, "arn", caller.Arn)

	profiles, err := awsprofile.NewSource(configFile).Load()
	if err != nil {
		return err
	}
	profiles, err = awsprofile.Filter(profiles, scanCfg.Profiles, scanCfg.ExcludeProfiles)
	if err != nil {
		return err
	}

	s := scanner.New(&scanner.Options{
		Logger:                 log.Default(),
		Profiles:               profiles,
		NewClient:              scanner.DefaultClientFactory(configFile, awsCfg.Region, awsCfg.RoleArn),
		HealthyStatuses:        healthy,
		DriftCheckableStatuses: checkable,
		MaxDriftAge:            maxDriftAge,
		DryRun:                 scanCfg.DryRun,
	})

	summary, err := s.Run(ctx)
	if err != nil {
		return err
	}

	if scanCfg.ReportFile != "" {
		if err := u.WriteToFileAsJSON(scanCfg.ReportFile, summary, 0o644); err != nil {
			return err
		}
		log.Debug("Wrote scan report", "file", scanCfg.ReportFile)
	}

	switch scanCfg.Output {
	case formatJSON:
		return u.PrintAsJSON(summary)
	case formatYAML:
		return u.PrintAsYAML(summary)
	}
	return nil
}

func resolveMaxDriftAge(flags *pflag.FlagSet, configured string) (time.Duration, error) {
	if flags.Changed("max-drift-age") {
		return flags.GetDuration("max-drift-age")
	}
	if configured == "" {
		return evaluator.DefaultMaxDriftAge, nil
	}
	age, err := time.ParseDuration(configured)
	if err != nil {
		return 0, errUtils.Build(errUtils.ErrInvalidConfig).
			WithCause(err).
			WithContext("scan.max_drift_age", configured).
			Err()
	}
	return age, nil
}

func resolveAWSConfigFile(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return awsprofile.DefaultConfigPath()
}
