package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rentadmin/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	appCfg := config.AppConfig{
		Name:        "test-app",
		Environment: "test",
		Version:     "1.0.0",
	}

	t.Run("DefaultStdout", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "info", Output: "stdout"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("Stderr", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "debug", Output: "stderr"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
		assert.Nil(t, closer)
	})

	t.Run("Console", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "warn", Output: "stdout", Format: "console"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("File", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "admin.log")
		cfg := config.LoggingConfig{Level: "error", Output: "file", FilePath: logPath}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		require.NotNil(t, closer)
		closer.Close()

		_, err = os.Stat(logPath)
		assert.NoError(t, err)
	})

	t.Run("FileMissingPath", func(t *testing.T) {
		cfg := config.LoggingConfig{Output: "file", FilePath: ""}
		_, _, err := New(cfg, appCfg)
		assert.Error(t, err)
	})
}

func TestLevelFor(t *testing.T) {
	t.Run("ExplicitLevelWins", func(t *testing.T) {
		assert.Equal(t, zerolog.WarnLevel, levelFor("warn", "development"))
	})

	t.Run("DevelopmentDefaultsToDebug", func(t *testing.T) {
		assert.Equal(t, zerolog.DebugLevel, levelFor("", "development"))
		assert.Equal(t, zerolog.DebugLevel, levelFor("invalid", "development"))
	})

	t.Run("ProductionDefaultsToInfo", func(t *testing.T) {
		assert.Equal(t, zerolog.InfoLevel, levelFor("", "production"))
		assert.Equal(t, zerolog.InfoLevel, levelFor("invalid", ""))
	})
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	child := WithComponent(&base, "worker")
	child.Info().Msg("ping")
	assert.Contains(t, buf.String(), `"component":"worker"`)
}
