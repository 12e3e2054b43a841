package config

import (
	"fmt"
	"strings"
	"time"
)

const originLayout = "2006-01-02"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeClassification(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if c.Paths.DestDir, err = expandPath(c.Paths.DestDir); err != nil {
		return fmt.Errorf("paths.dest_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeClassification() error {
	origin := strings.TrimSpace(c.Classification.Origin)
	if origin == "" {
		origin = defaultOrigin
	}
	parsed, err := time.Parse(originLayout, origin)
	if err != nil {
		return fmt.Errorf("classification.origin: expected YYYY-MM-DD, got %q", origin)
	}
	c.Classification.Origin = origin
	c.Classification.origin = parsed

	c.Classification.TimeSource = strings.ToLower(strings.TrimSpace(c.Classification.TimeSource))
	if c.Classification.TimeSource == "" {
		c.Classification.TimeSource = defaultTimeSource
	}

	c.Classification.Extensions = NormalizeExtensions(c.Classification.Extensions)
	if len(c.Classification.Extensions) == 0 {
		c.Classification.Extensions = defaultExtensions()
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// NormalizeExtensions lowercases, trims leading dots, and drops empty entries.
// Entries may themselves be comma-separated, so CLI callers can pass the raw
// `png,jpg,jpeg` form straight through.
func NormalizeExtensions(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			ext := strings.ToLower(strings.TrimSpace(part))
			ext = strings.TrimPrefix(ext, ".")
			if ext == "" {
				continue
			}
			if _, dup := seen[ext]; dup {
				continue
			}
			seen[ext] = struct{}{}
			out = append(out, ext)
		}
	}
	return out
}
