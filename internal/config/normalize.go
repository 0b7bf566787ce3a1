package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAgent(); err != nil {
		return err
	}
	if err := c.normalizeBookmarks(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAgent() error {
	c.Agent.BaseURL = strings.TrimSpace(c.Agent.BaseURL)
	// The environment variable overrides the built-in default, never an
	// explicitly configured URL.
	if c.Agent.BaseURL == "" || c.Agent.BaseURL == defaultAgentBaseURL {
		if value, ok := os.LookupEnv("LADLE_AGENT_URL"); ok && strings.TrimSpace(value) != "" {
			c.Agent.BaseURL = strings.TrimSpace(value)
		}
	}
	if c.Agent.BaseURL == "" {
		c.Agent.BaseURL = defaultAgentBaseURL
	}
	c.Agent.BaseURL = strings.TrimRight(c.Agent.BaseURL, "/")
	if c.Agent.RequestTimeout <= 0 {
		c.Agent.RequestTimeout = defaultAgentRequestTimeout
	}
	if c.Agent.PollInterval <= 0 {
		c.Agent.PollInterval = defaultAgentPollInterval
	}
	if c.Agent.MaxPollSeconds < 0 {
		c.Agent.MaxPollSeconds = 0
	}
	return nil
}

func (c *Config) normalizeBookmarks() error {
	c.Bookmarks.DBPath = strings.TrimSpace(c.Bookmarks.DBPath)
	if c.Bookmarks.DBPath == "" {
		c.Bookmarks.DBPath = defaultBookmarksDBPath
	}
	expanded, err := expandPath(c.Bookmarks.DBPath)
	if err != nil {
		return fmt.Errorf("bookmarks.db_path: %w", err)
	}
	c.Bookmarks.DBPath = expanded
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Language = strings.ToLower(strings.TrimSpace(c.Output.Language))
	if c.Output.Language == "" {
		c.Output.Language = defaultOutputLanguage
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultOutputColor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
