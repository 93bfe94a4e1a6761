package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seatplan-viewer-cli/service"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Chdir(root)
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.String("log-level", "", "")
	flags.Bool("show-seat-numbers", false, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.False(t, cfg.ShowSeatNumbers)
	assert.Empty(t, cfg.FileUsed)
}

func TestLoad_FileInWorkingDirectory(t *testing.T) {
	root := isolate(t)
	writeFile(t, filepath.Join(root, "seatplan.yaml"), "base_url: http://localhost:9000\nhttp_timeout: 5s\nshow_seat_numbers: true\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.ShowSeatNumbers)
	assert.Equal(t, "seatplan.yaml", cfg.FileUsed)
}

func TestLoad_UserConfigDir(t *testing.T) {
	root := isolate(t)
	writeFile(t, filepath.Join(root, AppName, "config.yaml"), "log_level: debug\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.yaml")
	writeFile(t, path, "base_url: http://file.test\nlog_level: error\n")
	t.Setenv("SEATPLAN_BASE_URL", "http://env.test")
	t.Setenv("SEATPLAN_LOG_LEVEL", "warn")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--base-url", "http://flag.test"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.test", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, path, cfg.FileUsed)
}

func TestLoad_DotEnv(t *testing.T) {
	root := isolate(t)
	writeFile(t, filepath.Join(root, ".env"), "SEATPLAN_BASE_URL=http://dotenv.test\n")
	t.Cleanup(func() { _ = os.Unsetenv("SEATPLAN_BASE_URL") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.test", cfg.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "base url scheme", content: "base_url: ftp://example.test\n"},
		{name: "log level", content: "log_level: loud\n"},
		{name: "negative timeout", content: "http_timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := isolate(t)
			path := filepath.Join(root, "bad.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}
