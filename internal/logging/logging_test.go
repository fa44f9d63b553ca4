package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, levelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, levelFromEnv())
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(NewHandler(&buf, slog.LevelInfo)))

	var _ calculation.Logger = logger

	logger.Debugf("hidden %d", 1)
	logger.Infof("calculating taxpayer %d", 0)
	logger.Warnf("gross-up did not converge after %d iterations", 50)
	logger.Errorf("failed: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "calculating taxpayer 0")
	assert.Contains(t, out, "gross-up did not converge after 50 iterations")
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "WRN")
}

func TestSlogLogger_SourceIsCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(NewHandler(&buf, slog.LevelInfo)))

	logger.Warnf("gross-up did not converge")

	out := buf.String()
	assert.Contains(t, out, "logging_test.go:")
	assert.NotContains(t, out, "logging.go:")
}

func TestSlogLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(NewHandler(&buf, slog.LevelDebug)))
	defer slog.SetDefault(previous)

	SlogLogger{}.Debugf("rate %s", "2%")
	assert.Contains(t, buf.String(), "rate 2%")
}
