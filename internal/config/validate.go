package config

import (
	"fmt"
	"time"
)

// Validate rejects configurations the commands cannot act on.
func (c *Config) Validate() error {
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Content.Dir == c.Output.Dir {
		return fmt.Errorf("content.dir and output.dir must differ (both are %q)", c.Content.Dir)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	if _, err := time.ParseDuration(c.Serve.RebuildInterval); err != nil {
		return fmt.Errorf("serve.rebuild_interval: %w", err)
	}
	if c.Images.JPEGQuality < 1 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("images.jpeg_quality %d out of range (1-100)", c.Images.JPEGQuality)
	}
	return nil
}

// RebuildInterval returns the parsed periodic rebuild interval.
// Validate guarantees this parses.
func (c *Config) RebuildInterval() time.Duration {
	d, _ := time.ParseDuration(c.Serve.RebuildInterval)
	return d
}
