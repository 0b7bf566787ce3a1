package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"ladle/internal/agent"
	"ladle/internal/bookmarks"
	"ladle/internal/config"
	"ladle/internal/logging"
	"ladle/internal/usererr"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

// configSource reports where configuration was loaded from and whether the
// file actually exists (defaults apply when it does not).
func (c *commandContext) configSource() (string, bool, error) {
	if _, err := c.ensureConfig(); err != nil {
		return "", false, err
	}
	return c.configPath, c.configExists, nil
}

func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func (c *commandContext) agentClient() (*agent.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := agent.NewFromConfig(cfg, c.logger())
	if err != nil {
		return nil, fmt.Errorf("configure agent client: %w", err)
	}
	return client, nil
}

func (c *commandContext) messages() usererr.Messages {
	cfg, err := c.ensureConfig()
	if err != nil {
		return usererr.ForLanguage("")
	}
	return usererr.ForLanguage(cfg.Output.Language)
}

func (c *commandContext) withStore(fn func(*bookmarks.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Bookmarks.Enabled {
		return fmt.Errorf("bookmarks are disabled; enable [bookmarks] in the configuration")
	}
	store, err := bookmarks.Open(cfg.Bookmarks.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) colorize() bool {
	cfg, err := c.ensureConfig()
	if err != nil {
		return false
	}
	return shouldColorize(cfg.Output.Color)
}
