package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"sechelper/internal/config"
	"sechelper/internal/core/domain"
	"sechelper/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.NewAppLoggerTo(config.LoggerConfig{Level: config.LogLevelInfo, Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)

	l.Debug("dropped")
	l.With("detector", "activity").Info("block processed", "height", 101)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "block processed", rec["msg"])
	assert.Equal(t, "activity", rec["detector"])
	assert.Equal(t, "sechelper", rec["app"])
	assert.EqualValues(t, 101, rec["height"])
}

func TestNewAppLoggerTo_Invalid(t *testing.T) {
	_, err := logger.NewAppLoggerTo(config.LoggerConfig{Level: "loud", Format: config.LogFormatJSON}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = logger.NewAppLoggerTo(config.LoggerConfig{Level: config.LogLevelInfo, Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewAppLoggerTo_RendersValueObjects(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.NewAppLoggerTo(config.LoggerConfig{Level: "DEBUG", Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)

	addr, err := domain.NewAddress("0x722122DF12D4E14E13AC3B6895A86E84145B6967")
	require.NoError(t, err)
	l.Debug("mixer loaded", "address", addr, logger.KeyHeight, domain.BlockHeightOf(7), logger.KeyError, errors.New("boom"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "0x722122df12d4e14e13ac3b6895a86e84145b6967", rec["address"])
	assert.Equal(t, domain.BlockHeightOf(7).String(), rec[logger.KeyHeight])
	assert.Equal(t, "boom", rec[logger.KeyError])
}

func TestNewDiscardLogger(t *testing.T) {
	l := logger.NewDiscardLogger()
	assert.NotPanics(t, func() {
		l.With(logger.KeyComponent, "test").Error("ignored", "n", 1)
	})
}
