package config

import (
	"errors"
	"fmt"
	"strings"
)

var validTimeSources = map[string]struct{}{
	"modification":     {},
	"creation":         {},
	"embedded-capture": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateClassification(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DestDir) == "" {
		return errors.New("paths.dest_dir must be set")
	}
	return nil
}

func (c *Config) validateClassification() error {
	if c.Classification.PeriodDays <= 0 {
		return fmt.Errorf("classification.period_days must be positive, got %d", c.Classification.PeriodDays)
	}
	if _, ok := validTimeSources[c.Classification.TimeSource]; !ok {
		return fmt.Errorf("classification.time_source must be one of modification, creation, embedded-capture; got %q", c.Classification.TimeSource)
	}
	if len(c.Classification.Extensions) == 0 {
		return errors.New("classification.extensions must list at least one extension")
	}
	if c.Classification.SettleDelayMs < 0 {
		return fmt.Errorf("classification.settle_delay_ms must not be negative, got %d", c.Classification.SettleDelayMs)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return fmt.Errorf("notifications.request_timeout must be positive, got %d", c.Notifications.RequestTimeout)
	}
	return nil
}
