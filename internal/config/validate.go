package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAgent(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAgent() error {
	if c.Agent.BaseURL == "" {
		return errors.New("agent.base_url must be set")
	}
	parsed, err := url.Parse(c.Agent.BaseURL)
	if err != nil {
		return fmt.Errorf("agent.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("agent.base_url must be an http or https URL, got %q", c.Agent.BaseURL)
	}
	if c.Agent.PollInterval < 1 {
		return errors.New("agent.poll_interval must be at least 1 second")
	}
	if c.Agent.MaxPollSeconds > 0 && c.Agent.MaxPollSeconds < c.Agent.PollInterval {
		return errors.New("agent.max_poll_seconds must be zero or at least agent.poll_interval")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always, or never, got %q", c.Output.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
