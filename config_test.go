package timesync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, []string{DefaultServer}, cfg.Servers)
	require.Equal(t, DefaultTimeoutMs, cfg.TimeoutMs)
	require.Equal(t, DefaultRetries, cfg.Retries)
}

func TestNormalizeClamps(t *testing.T) {
	cfg := &Config{TimeoutMs: 9999, Retries: 99}
	cfg.Normalize()
	require.Equal(t, maxTimeoutMs, cfg.TimeoutMs)
	require.Equal(t, maxRetries, cfg.Retries)
	require.Equal(t, []string{DefaultServer}, cfg.Servers)

	cfg = &Config{TimeoutMs: 0, Retries: -1}
	cfg.Normalize()
	require.Equal(t, DefaultTimeoutMs, cfg.TimeoutMs)
	require.Equal(t, DefaultRetries, cfg.Retries)
}

func TestNormalizeTestModeDisablesSyslog(t *testing.T) {
	cfg := &Config{TestOnly: true, UseSyslog: true}
	cfg.Normalize()
	require.False(t, cfg.UseSyslog)
}

func TestNewConfigFromFile(t *testing.T) {
	cfg, err := NewConfigFromFile("config.example.yml")
	require.NoError(t, err)
	require.Equal(t, []string{"0.pool.ntp.org", "1.pool.ntp.org"}, cfg.Servers)
	require.Equal(t, 1500, cfg.TimeoutMs)
	require.Equal(t, 5, cfg.Retries)
	require.True(t, cfg.Verbose)
	require.Equal(t, "http://127.0.0.1:9091", cfg.Metric)
}

func TestNewConfigFromFileMissing(t *testing.T) {
	_, err := NewConfigFromFile("no-such-file.yml")
	require.Error(t, err)
}
