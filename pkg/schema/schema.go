package schema

// Configuration represents the schema for the `driftwatch.yaml` CLI config.
type Configuration struct {
	Logs          Logs     `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`
	AWS           AWS      `yaml:"aws,omitempty" json:"aws,omitempty" mapstructure:"aws"`
	Scan          Scan     `yaml:"scan,omitempty" json:"scan,omitempty" mapstructure:"scan"`
	Settings      Settings `yaml:"settings,omitempty" json:"settings,omitempty" mapstructure:"settings"`
	Default       bool     `yaml:"default" json:"default" mapstructure:"default"`
	CliConfigPath string   `yaml:"cli_config_path,omitempty" json:"cli_config_path,omitempty" mapstructure:"cli_config_path"`
}

type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level"`
}

// AWS groups the settings that control how per-profile AWS sessions are built.
type AWS struct {
	ConfigFile string `yaml:"config_file" json:"config_file" mapstructure:"config_file"`
	Region     string `yaml:"region,omitempty" json:"region,omitempty" mapstructure:"region"`
	RoleArn    string `yaml:"role_arn,omitempty" json:"role_arn,omitempty" mapstructure:"role_arn"`
}

// Scan groups the settings for a drift scan run.
type Scan struct {
	Profiles               []string `yaml:"profiles,omitempty" json:"profiles,omitempty" mapstructure:"profiles"`
	ExcludeProfiles        []string `yaml:"exclude_profiles,omitempty" json:"exclude_profiles,omitempty" mapstructure:"exclude_profiles"`
	MaxDriftAge            string   `yaml:"max_drift_age" json:"max_drift_age" mapstructure:"max_drift_age"`
	HealthyStatuses        []string `yaml:"healthy_statuses,omitempty" json:"healthy_statuses,omitempty" mapstructure:"healthy_statuses"`
	DriftCheckableStatuses []string `yaml:"drift_checkable_statuses,omitempty" json:"drift_checkable_statuses,omitempty" mapstructure:"drift_checkable_statuses"`
	DryRun                 bool     `yaml:"dry_run" json:"dry_run" mapstructure:"dry_run"`
	Output                 string   `yaml:"output,omitempty" json:"output,omitempty" mapstructure:"output"`
	ReportFile             string   `yaml:"report_file,omitempty" json:"report_file,omitempty" mapstructure:"report_file"`
}

type Settings struct {
	Sentry SentryConfig `yaml:"sentry,omitempty" json:"sentry,omitempty" mapstructure:"sentry"`
}

// SentryConfig configures optional error reporting to Sentry.
type SentryConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	DSN         string `yaml:"dsn,omitempty" json:"dsn,omitempty" mapstructure:"dsn"`
	Environment string `yaml:"environment,omitempty" json:"environment,omitempty" mapstructure:"environment"`
	Release     string `yaml:"release,omitempty" json:"release,omitempty" mapstructure:"release"`
}
