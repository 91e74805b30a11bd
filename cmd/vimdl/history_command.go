package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vimdl/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent download runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No downloads recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func renderHistory(runs []history.Run) string {
	cols := []column{
		textColumn("Run"),
		textColumn("Status"),
		textColumn("Clip"),
		textColumn("Output"),
		numericColumn("Size"),
		textColumn("Started"),
		textColumn("Error"),
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		size := "-"
		if run.BytesWritten > 0 {
			size = formatBytes(run.BytesWritten)
		}
		clip := run.ClipID
		if clip == "" {
			clip = "-"
		}
		rows = append(rows, []string{
			shortID(run.ID),
			string(run.Status),
			clip,
			run.OutputPath,
			size,
			formatAge(run.StartedAt),
			truncate(run.ErrorMessage, 60),
		})
	}
	return renderTable(cols, rows)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
