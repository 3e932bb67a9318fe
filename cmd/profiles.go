package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/driftwatch/errors"
	"github.com/cloudposse/driftwatch/pkg/awsprofile"
	log "github.com/cloudposse/driftwatch/pkg/logger"
	u "github.com/cloudposse/driftwatch/pkg/utils"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the AWS profiles a scan would iterate over",
	Long: `Profiles prints the named profiles found in the AWS shared config file after
the include/exclude filters are applied, without touching any AWS API. Use it
to verify which accounts a scan will cover.`,
	Example: "  driftwatch profiles\n" +
		"  driftwatch profiles --profiles 'prod-*' --output json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execProfiles(cmd)
	},
}

func init() {
	profilesCmd.Flags().String("aws-config", "", "Path to the AWS shared config file enumerating the profiles (defaults to ~/.aws/config, honoring AWS_CONFIG_FILE)")
	profilesCmd.Flags().StringSlice("profiles", nil, "Glob patterns selecting the profiles to list (default: all)")
	profilesCmd.Flags().StringSlice("exclude-profiles", nil, "Glob patterns excluding profiles from the listing")
	profilesCmd.Flags().String("output", "", "Print the profiles in the given format: json or yaml")
	RootCmd.AddCommand(profilesCmd)
}

func execProfiles(cmd *cobra.Command) error {
	flags := cmd.Flags()

	include := cliConfig.Scan.Profiles
	exclude := cliConfig.Scan.ExcludeProfiles
	configFile := cliConfig.AWS.ConfigFile
	output := ""

	if flags.Changed("profiles") {
		include, _ = flags.GetStringSlice("profiles")
	}
	if flags.Changed("exclude-profiles") {
		exclude, _ = flags.GetStringSlice("exclude-profiles")
	}
	if flags.Changed("aws-config") {
		configFile, _ = flags.GetString("aws-config")
	}
	if flags.Changed("output") {
		output, _ = flags.GetString("output")
	}

	if output != "" && output != formatJSON && output != formatYAML {
		return errUtils.Build(errUtils.ErrInvalidOutputFormat).
			WithContext("output", output).
			WithHint("Supported formats: json, yaml").
			Err()
	}

	configFile, err := resolveAWSConfigFile(configFile)
	if err != nil {
		return err
	}

	source := awsprofile.NewSource(configFile)
	profiles, err := source.Load()
	if err != nil {
		return err
	}
	profiles, err = awsprofile.Filter(profiles, include, exclude)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		log.Warn("No profiles matched", "file", source.Path())
		return nil
	}

	switch output {
	case formatJSON:
		return u.PrintAsJSON(profiles)
	case formatYAML:
		return u.PrintAsYAML(profiles)
	}

	log.Debug("Listing profiles", "file", source.Path(), "count", len(profiles))
	for _, p := range profiles {
		if p.Region != "" {
			u.PrintMessage(fmt.Sprintf("%s\t%s", p.Name, p.Region))
			continue
		}
		u.PrintMessage(p.Name)
	}
	return nil
}
