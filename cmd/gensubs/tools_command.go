package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gensubs/internal/deps"
)

func newToolsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Report availability of the external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := []deps.Status{deps.CheckTranscoder(cfg.Tools.Transcoder)}
			statuses = append(statuses, deps.CheckBinaries([]deps.Requirement{{
				Name:        "Recognizer",
				Command:     cfg.Tools.Recognizer,
				Description: "Produces subtitle files from the audio track",
			}})...)

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return deps.FirstMissing(statuses)
		},
	}
}
