package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/bookmarks"
)

func newBookmarksCommand(ctx *commandContext) *cobra.Command {
	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage saved recipes",
	}

	bookmarksCmd.AddCommand(newBookmarksListCommand(ctx))
	bookmarksCmd.AddCommand(newBookmarksRemoveCommand(ctx))

	return bookmarksCmd
}

func newBookmarksListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarked recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *bookmarks.Store) error {
				saved, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, saved)
				}

				out := cmd.OutOrStdout()
				if len(saved) == 0 {
					fmt.Fprintln(out, "No bookmarks yet. Save recipes with `ladle ask --bookmark`.")
					return nil
				}

				rows := make([][]string, 0, len(saved))
				for _, entry := range saved {
					rows = append(rows, []string{
						entry.Recipe.FoodName,
						string(entry.Recipe.Source),
						fmt.Sprintf("%d", len(entry.Recipe.Steps)),
						entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable([]tableColumn{
					{Title: "Recipe"},
					{Title: "Source"},
					{Title: "Steps", Align: alignRight},
					{Title: "Saved"},
				}, rows))
				return nil
			})
		},
	}
}

func newBookmarksRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <food name>",
		Short: "Remove a bookmarked recipe by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withStore(func(store *bookmarks.Store) error {
				removed, err := store.Remove(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no bookmark named %q", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", name)
				return nil
			})
		},
	}
}
