package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/driftwatch/errors"
	cfg "github.com/cloudposse/driftwatch/pkg/config"
	log "github.com/cloudposse/driftwatch/pkg/logger"
	"github.com/cloudposse/driftwatch/pkg/schema"
)

var cliConfig schema.Configuration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "driftwatch",
	Short: "Watch CloudFormation stacks for unhealthy states and configuration drift",
	Long: `Driftwatch iterates over the AWS profiles in a shared config file, lists the
CloudFormation stacks in each account, flags stacks that are not in a healthy
state, and requests drift detection wherever drift information is missing or
stale. Its log output feeds a human or an alerting pipeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// Cleanup releases global resources before exit.
func Cleanup() {
	errUtils.CloseSentry()
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "Info", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off. If the log level is set to Off, driftwatch will not log any messages")
	RootCmd.PersistentFlags().String("logs-file", "/dev/stderr", "The file to write driftwatch logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null'")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	RootCmd.PersistentFlags().String("config", "", "Directory containing driftwatch.yaml, overriding the standard search paths")
}

// initConfig loads the CLI config, layers flag overrides on top, and
// configures the default logger and Sentry.
func initConfig(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	loaded, err := cfg.LoadConfig(configDir)
	if err != nil {
		return err
	}
	cliConfig = loaded

	if cmd.Flags().Changed("logs-level") {
		cliConfig.Logs.Level, _ = cmd.Flags().GetString("logs-level")
	}
	if cmd.Flags().Changed("logs-file") {
		cliConfig.Logs.File, _ = cmd.Flags().GetString("logs-file")
	}

	if err := setupLogger(&cliConfig); err != nil {
		return err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		log.SetColorProfile(termenv.Ascii)
		color.NoColor = true
	}

	if err := errUtils.InitializeSentry(&cliConfig.Settings.Sentry); err != nil {
		log.Warn("Sentry initialization failed, error reporting disabled", "error", err)
	}
	return nil
}

// setupLogger configures the default logger's level and output from the
// loaded config. An empty logs file leaves the current output untouched.
func setupLogger(cliConfig *schema.Configuration) error {
	level, err := log.ParseLogLevel(cliConfig.Logs.Level)
	if err != nil {
		return errUtils.Build(errUtils.ErrInvalidConfig).
			WithCause(err).
			WithContext("logs.level", cliConfig.Logs.Level).
			Err()
	}
	log.Default().SetLogLevel(level)

	var output io.Writer
	switch cliConfig.Logs.File {
	case "/dev/stderr":
		output = os.Stderr
	case "/dev/stdout":
		output = os.Stdout
	case "/dev/null":
		output = io.Discard
	case "":
		return nil
	default:
		logFile, err := os.OpenFile(cliConfig.Logs.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errUtils.Build(errUtils.ErrInvalidConfig).
				WithCause(err).
				WithContext("logs.file", cliConfig.Logs.File).
				Err()
		}
		output = logFile
	}

	log.SetOutput(output)
	return nil
}
