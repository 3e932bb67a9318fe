package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToYAML(t *testing.T) {
	data := struct {
		Name   string   `yaml:"name"`
		Counts []int    `yaml:"counts"`
		Tags   []string `yaml:"tags,omitempty"`
	}{
		Name:   "scan",
		Counts: []int{1, 2},
	}

	y, err := ConvertToYAML(data)
	require.NoError(t, err)

	assert.Contains(t, y, "name: scan")
	assert.Contains(t, y, "counts:")
	assert.NotContains(t, y, "tags:")
}
