package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/logger"
)

func TestNew(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		_, err := logger.New(config.LoggingConfig{Level: "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("writes json to rotated file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sms.log")

		log, err := logger.New(config.LoggingConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("Batch completed", zap.String("batch_id", "b-1"))
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &entry), "exactly one json line is written")
		assert.Equal(t, "Batch completed", entry["msg"])
		assert.Equal(t, "b-1", entry["batch_id"])
		assert.Equal(t, "info", entry["level"])
	})
}
