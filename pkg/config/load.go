package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	log "github.com/cloudposse/driftwatch/pkg/logger"
	"github.com/cloudposse/driftwatch/pkg/schema"
)

// LoadConfig loads the CLI config from the following locations (from lower to higher priority):
// system dir (`/usr/local/etc/driftwatch` on Linux, `%LOCALAPPDATA%/driftwatch` on Windows)
// home dir (~/.driftwatch)
// current directory
// ENV vars
// Command-line arguments
//
// configDir, when not empty, is an explicit directory containing `driftwatch.yaml`
// that overrides everything except ENV vars and flags.
func LoadConfig(configDir string) (schema.Configuration, error) {
	v := viper.New()
	var cfg schema.Configuration
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)
	setDefaultConfiguration(v)
	err := readSystemConfig(v)
	if err != nil {
		return cfg, err
	}
	err = readHomeConfig(v)
	if err != nil {
		return cfg, err
	}
	err = readWorkDirConfig(v)
	if err != nil {
		return cfg, err
	}
	err = readEnvConfigPath(v)
	if err != nil {
		return cfg, err
	}
	if configDir != "" {
		err := mergeConfig(v, configDir, CliConfigFileName)
		switch err.(type) {
		case nil:
		case viper.ConfigFileNotFoundError:
			log.Debug("config not found", "dir", configDir)
		default:
			return cfg, err
		}
	}

	cfg.CliConfigPath = v.ConfigFileUsed()

	if cfg.CliConfigPath == "" {
		log.Debug("'driftwatch.yaml' CLI config was not found", "paths", "system dir, home dir, current dir, ENV vars")
		log.Debug("Using the default CLI config")
		cfg.Default = true
	}
	if cfg.CliConfigPath != "" && !filepath.IsAbs(cfg.CliConfigPath) {
		absPath, err := filepath.Abs(cfg.CliConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg.CliConfigPath = absPath
	}

	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setDefaultConfiguration sets default configuration for the viper instance.
// Every key gets a default so that ENV overrides resolve even without a config file.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "Info")
	v.SetDefault("aws.config_file", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.role_arn", "")
	v.SetDefault("scan.profiles", []string{})
	v.SetDefault("scan.exclude_profiles", []string{})
	v.SetDefault("scan.max_drift_age", DefaultMaxDriftAge)
	v.SetDefault("scan.healthy_statuses", []string{})
	v.SetDefault("scan.drift_checkable_statuses", []string{})
	v.SetDefault("scan.dry_run", false)
	v.SetDefault("scan.output", "")
	v.SetDefault("scan.report_file", "")
	v.SetDefault("settings.sentry.enabled", false)
}

// readSystemConfig loads config from the system dir.
func readSystemConfig(v *viper.Viper) error {
	configFilePath := ""
	if runtime.GOOS == "windows" {
		appDataDir := os.Getenv(WindowsAppDataEnvVar)
		if len(appDataDir) > 0 {
			configFilePath = filepath.Join(appDataDir, CliConfigFileName)
		}
	} else {
		configFilePath = SystemDirConfigFilePath
	}

	if len(configFilePath) > 0 {
		err := mergeConfig(v, configFilePath, CliConfigFileName)
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

// readHomeConfig loads config from the user's HOME dir.
func readHomeConfig(v *viper.Viper) error {
	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	configFilePath := filepath.Join(home, DotCliConfigFileName)
	err = mergeConfig(v, configFilePath, CliConfigFileName)
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

// readWorkDirConfig loads config from the current working directory.
func readWorkDirConfig(v *viper.Viper) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	err = mergeConfig(v, wd, CliConfigFileName)
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			return nil
		default:
			return err
		}
	}
	return nil
}

func readEnvConfigPath(v *viper.Viper) error {
	configDir := os.Getenv(EnvVarConfigPath)
	if configDir != "" {
		err := mergeConfig(v, configDir, CliConfigFileName)
		if err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
				log.Debug("config not found in ENV var dir", EnvVarConfigPath, configDir)
				return nil
			default:
				return err
			}
		}
		log.Debug("Found config via ENV", EnvVarConfigPath, configDir)
	}
	return nil
}

// mergeConfig merges config from a specified path and file name.
func mergeConfig(v *viper.Viper, path string, fileName string) error {
	v.AddConfigPath(path)
	v.SetConfigName(fileName)
	return v.MergeInConfig()
}
