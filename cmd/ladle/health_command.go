package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the agent service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.agentClient()
			if err != nil {
				return err
			}

			health := client.CheckHealth(cmd.Context())
			if ctx.JSONMode() {
				if err := writeJSON(cmd, health); err != nil {
					return err
				}
			} else {
				kind := statusOK
				message := "reachable"
				if !health.Agent {
					kind = statusError
					message = "unreachable"
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStatusLine("agent", kind, message, ctx.colorize()))
			}

			if !health.Agent {
				return errors.New("agent service is unreachable")
			}
			return nil
		},
	}
}
