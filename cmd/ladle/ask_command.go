package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ladle/internal/bookmarks"
	"ladle/internal/recipes"
	"ladle/internal/usererr"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var fullAnswer bool
	var saveBookmarks bool

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send a message to the cooking assistant and wait for the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.agentClient()
			if err != nil {
				return err
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			result, report, err := client.Ask(cmd.Context(), message)
			if err != nil {
				// Show the friendly message; the raw error still decides the
				// exit status.
				fmt.Fprintln(cmd.OutOrStdout(), usererr.Classify(err, ctx.messages()))
				return err
			}

			saved := 0
			if saveBookmarks && len(result.Recipes) > 0 {
				err := ctx.withStore(func(store *bookmarks.Store) error {
					for _, recipe := range result.Recipes {
						if strings.TrimSpace(recipe.FoodName) == "" {
							continue
						}
						if err := store.Add(cmd.Context(), recipe); err != nil {
							return err
						}
						saved++
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, struct {
					recipes.Result
					Report     recipes.Report `json:"report"`
					Bookmarked int            `json:"bookmarked,omitempty"`
				}{Result: result, Report: report, Bookmarked: saved})
			}

			out := cmd.OutOrStdout()
			answer := result.Answer
			if fullAnswer {
				answer = recipes.AggregateAnswer(result.Answer, report.Fragments)
			}
			if strings.TrimSpace(answer) == "" {
				answer = "레시피 정보를 확인해주세요."
			}
			fmt.Fprintln(out, answer)

			for _, recipe := range result.Recipes {
				fmt.Fprintln(out)
				fmt.Fprint(out, renderRecipe(recipe))
			}

			if report.Dropped > 0 || len(report.Defaulted) > 0 {
				ctx.logger().Debug("normalization degraded",
					"dropped", report.Dropped,
					"defaulted", strings.Join(report.Defaulted, ","))
			}

			if saveBookmarks {
				fmt.Fprintf(out, "\nBookmarked %d recipe(s)\n", saved)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fullAnswer, "full-answer", false, "Include answer text recovered from nested responses")
	cmd.Flags().BoolVar(&saveBookmarks, "bookmark", false, "Bookmark every recipe in the response")
	return cmd
}
