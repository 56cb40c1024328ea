package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nqdsheat/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"NQDS_MAX_MODELS", "NQDS_HEADER_LINES", "NQDS_FILE", "NQDS_DEFAULT_MODE", "NQDS_DEFAULT_ORDER", "NQDS_DEFAULT_KIND", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("NQDS_MAX_MODELS", "50")
	t.Setenv("NQDS_HEADER_LINES", "0")
	t.Setenv("NQDS_FILE", "runs.txt")
	t.Setenv("NQDS_DEFAULT_MODE", "AVG")
	t.Setenv("NQDS_DEFAULT_ORDER", "descend")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Data.MaxModels)
	assert.Equal(t, 0, cfg.Data.HeaderLines)
	assert.Equal(t, "runs.txt", cfg.Data.SourceFile)
	assert.Equal(t, "avg", cfg.View.DefaultMode)
	assert.Equal(t, "descend", cfg.View.DefaultOrder)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("NQDS_MAX_MODELS", "many")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Data.MaxModels)
}

func TestLoad_RejectsNegative(t *testing.T) {
	t.Setenv("NQDS_HEADER_LINES", "-1")
	_, err := Load()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
