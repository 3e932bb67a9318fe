package config

const (
	// CliConfigFileName is the name of the CLI config file without extension.
	CliConfigFileName    = "driftwatch"
	DotCliConfigFileName = ".driftwatch"

	SystemDirConfigFilePath = "/usr/local/etc/driftwatch"
	WindowsAppDataEnvVar    = "LOCALAPPDATA"

	// EnvVarConfigPath points at a directory containing `driftwatch.yaml`.
	EnvVarConfigPath = "DRIFTWATCH_CLI_CONFIG_PATH"

	// EnvVarPrefix prefixes the ENV vars that override individual config keys,
	// e.g. DRIFTWATCH_LOGS_LEVEL overrides `logs.level`.
	EnvVarPrefix = "DRIFTWATCH"

	// DefaultMaxDriftAge is how old a drift check may be before a stack is
	// re-checked.
	DefaultMaxDriftAge = "48h"
)
