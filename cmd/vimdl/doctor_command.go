package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vimdl/internal/deps"
	"vimdl/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies and working directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			failures := 0
			rows := make([][]string, 0, 4)
			for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
				if !status.Available && !status.Optional {
					failures++
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Command
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}
			for _, result := range preflight.RunAll(cfg) {
				if !result.Passed {
					failures++
				}
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
			}

			cols := []column{textColumn("Check"), textColumn("OK"), textColumn("Detail")}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cols, rows))
			if failures > 0 {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}
