package config

import (
	"fmt"
	"time"
)

// Validate checks the loaded config for values that would break a run later.
func Validate(cfg *Config) error {
	if err := validDuration("pipe.timeout", cfg.Pipe.Timeout); err != nil {
		return err
	}
	if err := validDuration("pipe.poll_interval", cfg.Pipe.PollInterval); err != nil {
		return err
	}
	if c := cfg.Export.Channels; c != 0 && c != 1 && c != 2 {
		return fmt.Errorf("export.channels must be 1 (mono) or 2 (stereo), got %d", c)
	}
	return nil
}

func validDuration(key, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return nil
}
