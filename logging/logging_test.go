package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Writer(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Info("hidden")
	logger.Warn("shown", "seat", "14C")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "seat=14C")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "seatplan.log")
	logger, closeFn, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("fetching", "flight", "1234")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flight=1234")
}

func TestNew_DiscardByDefault(t *testing.T) {
	logger, closeFn, err := New(Options{})
	require.NoError(t, err)
	assert.NoError(t, closeFn())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
