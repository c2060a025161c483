package logging_test

import (
	"testing"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{name: "production info", cfg: config.LogConfig{Level: "info"}, enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "development debug", cfg: config.LogConfig{Level: "debug", Development: true}, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "warn", cfg: config.LogConfig{Level: "warn"}, enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.NewLogger(tt.cfg)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNewLogger_Error(t *testing.T) {
	_, err := logging.NewLogger(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
