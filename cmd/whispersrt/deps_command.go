package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whispersrt/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg.Tools))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				location := status.Path
				if !status.Available {
					location = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					yesNo(!status.Optional),
					location,
					status.Description,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{
				{Header: "Tool"},
				{Header: "Command"},
				{Header: "Available"},
				{Header: "Required"},
				{Header: "Location"},
				{Header: "Purpose", MaxWidth: 40},
			}, rows))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return withExitCode(exitGeneric, fmt.Errorf("%d required tool(s) missing", len(missing)))
			}
			fmt.Fprintln(out, "All required tools available")
			return nil
		},
	}
}
