package awsprofile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	ini "gopkg.in/ini.v1"

	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
)

const (
	// profileSectionPrefix marks the sections of the AWS shared config file
	// that declare named profiles. The `[default]` section and other section
	// kinds (`sso-session`, `services`) carry no prefix and are not iterated.
	profileSectionPrefix = "profile "

	envAWSConfigFile = "AWS_CONFIG_FILE"
)

// Profile is one named profile from the AWS shared config file.
type Profile struct {
	Name   string `yaml:"name" json:"name"`
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
}

// Source enumerates profiles from one AWS shared config file.
// The file path is explicit; use DefaultConfigPath to resolve the conventional
// location.
type Source struct {
	path string
}

// NewSource creates a profile source for the config file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the config file path this source reads.
func (s *Source) Path() string {
	return s.path
}

// DefaultConfigPath returns the AWS shared config file path, honoring
// AWS_CONFIG_FILE over the conventional `~/.aws/config`.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv(envAWSConfigFile); path != "" {
		return path, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errUtils.Build(errUtils.ErrLoadProfiles).WithCause(err).Err()
	}
	return filepath.Join(home, ".aws", "config"), nil
}

// Load parses the config file and returns the named profiles in file order.
// Sections without the `profile ` prefix are skipped.
func (s *Source) Load() ([]Profile, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: false,
	}, s.path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrLoadProfiles).
			WithCause(err).
			WithContext("file", s.path).
			WithHintf("Check that the AWS config file %q exists and is readable", s.path).
			Err()
	}

	var profiles []Profile
	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		if !strings.HasPrefix(name, profileSectionPrefix) {
			log.Trace("Skipping non-profile section", "section", name, "file", s.path)
			continue
		}
		profiles = append(profiles, Profile{
			Name:   strings.TrimPrefix(name, profileSectionPrefix),
			Region: section.Key("region").String(),
		})
	}
	return profiles, nil
}
