package config

import "time"

// Config is the top-level audx configuration.
type Config struct {
	Pipe   PipeConfig   `toml:"pipe"`
	Export ExportConfig `toml:"export"`
}

// PipeConfig overrides the scripting pipe endpoints and timing.
type PipeConfig struct {
	To           string `toml:"to"`            // command endpoint override
	From         string `toml:"from"`          // response endpoint override
	Timeout      string `toml:"timeout"`       // per-command budget, e.g. "10s"
	PollInterval string `toml:"poll_interval"` // sleep between empty reads
}

// ExportConfig supplies defaults for the export subcommands.
type ExportConfig struct {
	Directory string `toml:"directory"`
	Format    string `toml:"format"`
	Base      string `toml:"base"`
	Prefix    string `toml:"prefix"`
	Channels  int    `toml:"channels"`
}

// Defaults mirror the stock mod-script-pipe client behavior.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultFormat       = "wav"
	DefaultBase         = "track"
	DefaultChannels     = 2
)

// TimeoutDuration returns the configured per-command budget, or the default.
func (p PipeConfig) TimeoutDuration() time.Duration {
	return durationOr(p.Timeout, DefaultTimeout)
}

// PollIntervalDuration returns the configured poll sleep, or the default.
func (p PipeConfig) PollIntervalDuration() time.Duration {
	return durationOr(p.PollInterval, DefaultPollInterval)
}

func durationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
