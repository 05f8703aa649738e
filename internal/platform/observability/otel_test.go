package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLogLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("order placed")
	logger.LogAttrs(context.Background(), slog.LevelWarn, "order rejected", slog.String("reason", "insufficient_stock"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "order rejected", record["msg"])
	assert.Equal(t, "insufficient_stock", record["reason"])
}

func TestNilInstrumentsFallBackToGlobalProviders(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("orders"))
	assert.NotNil(t, instruments.Meter("orders"))
}
