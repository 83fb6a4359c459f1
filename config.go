package timesync

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultServer    = "pool.ntp.org"
	DefaultTimeoutMs = 2000
	DefaultRetries   = 3

	maxTimeoutMs = 6000
	maxRetries   = 10
)

// Config is built once at startup and read-only afterwards.
type Config struct {
	Servers   []string `yaml:"servers"`
	TimeoutMs int      `yaml:"timeout_ms"`
	Retries   int      `yaml:"retries"`
	Verbose   bool     `yaml:"verbose"`
	TestOnly  bool     `yaml:"test_only"`
	UseSyslog bool     `yaml:"use_syslog"`
	Metric    string   `yaml:"metric"`
}

func DefaultConfig() *Config {
	return &Config{
		Servers:   []string{DefaultServer},
		TimeoutMs: DefaultTimeoutMs,
		Retries:   DefaultRetries,
	}
}

// NewConfigFromFile loads a YAML config, unset fields keep their
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	p, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(p, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize clamps out-of-range values back to sane ones and enforces
// cross-field rules. Values above the cap are clamped, zero or
// negative ones fall back to the default.
func (c *Config) Normalize() {
	if c.TimeoutMs > maxTimeoutMs {
		c.TimeoutMs = maxTimeoutMs
	}
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}
	if c.Retries > maxRetries {
		c.Retries = maxRetries
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	if len(c.Servers) == 0 {
		c.Servers = []string{DefaultServer}
	}
	// syslog noise is pointless on a dry run
	if c.TestOnly {
		c.UseSyslog = false
	}
}
