package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the resolved configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := ctx.configSource()
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, struct {
					Path   string `json:"path"`
					Exists bool   `json:"exists"`
				}{Path: path, Exists: exists})
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintln(out, path)
			} else {
				fmt.Fprintf(out, "%s (not found, defaults in use)\n", path)
			}
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "agent.base_url: %s\n", cfg.Agent.BaseURL)
			fmt.Fprintf(out, "agent.request_timeout: %ds\n", cfg.Agent.RequestTimeout)
			fmt.Fprintf(out, "agent.poll_interval: %ds\n", cfg.Agent.PollInterval)
			if cfg.Agent.MaxPollSeconds > 0 {
				fmt.Fprintf(out, "agent.max_poll_seconds: %d\n", cfg.Agent.MaxPollSeconds)
			} else {
				fmt.Fprintln(out, "agent.max_poll_seconds: unlimited")
			}
			fmt.Fprintf(out, "output.language: %s\n", cfg.Output.Language)
			fmt.Fprintf(out, "output.color: %s\n", cfg.Output.Color)
			fmt.Fprintf(out, "bookmarks.enabled: %s\n", yesNo(cfg.Bookmarks.Enabled))
			fmt.Fprintf(out, "bookmarks.db_path: %s\n", cfg.Bookmarks.DBPath)
			fmt.Fprintf(out, "logging.format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level: %s\n", cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
