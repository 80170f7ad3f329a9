package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/config"
)

func TestNewLoggerHonoursLevel(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"development at warn", config.LogConfig{Level: "warn", Development: true}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"development default", config.LogConfig{Development: true}, zapcore.DebugLevel, zapcore.InvalidLevel},
		{"production at error", config.LogConfig{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
		{"production at debug", config.LogConfig{Level: "debug"}, zapcore.DebugLevel, zapcore.InvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := newLogger(tt.cfg)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.disabled != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(config.LogConfig{Level: "chatty", Development: true})
	assert.Error(t, err)
}
