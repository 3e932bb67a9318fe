package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
	"github.com/cloudposse/driftwatch/pkg/schema"
)

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	cfg := &schema.Configuration{Logs: schema.Logs{Level: "debug", File: "/dev/stderr"}}

	err := setupLogger(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrInvalidConfig)
	assert.ErrorIs(t, err, log.ErrInvalidLogLevel)
}

func TestSetupLoggerAppliesConfiguredLevel(t *testing.T) {
	oldLogger := log.Default()
	defer log.SetDefault(oldLogger)
	log.SetDefault(log.New())

	cfg := &schema.Configuration{Logs: schema.Logs{Level: "Debug"}}
	require.NoError(t, setupLogger(cfg))

	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupLoggerEmptyLevelDefaultsToInfo(t *testing.T) {
	oldLogger := log.Default()
	defer log.SetDefault(oldLogger)
	log.SetDefault(log.New())

	cfg := &schema.Configuration{Logs: schema.Logs{Level: ""}}
	require.NoError(t, setupLogger(cfg))

	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
