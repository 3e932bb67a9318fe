package awsprofile

import (
	"github.com/gobwas/glob"

	errUtils "github.com/cloudposse/driftwatch/errors"
)

// Filter returns the profiles whose names match at least one include pattern
// and no exclude pattern. An empty include list matches every profile.
// Patterns use glob syntax (`prod-*`, `*-{use1,usw2}`).
func Filter(profiles []Profile, include []string, exclude []string) ([]Profile, error) {
	includeGlobs, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	excludeGlobs, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}

	var filtered []Profile
	for _, p := range profiles {
		if len(includeGlobs) > 0 && !matchAny(includeGlobs, p.Name) {
			continue
		}
		if matchAny(excludeGlobs, p.Name) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrInvalidProfileGlob).
				WithCause(err).
				WithContext("pattern", pattern).
				Err()
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
