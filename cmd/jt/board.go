package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	Long:  "Show applications grouped by board stage, one column per stage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		columns := make(map[types.Stage][]*types.ApplicationRecord, len(types.BoardStages))
		for _, stage := range types.BoardStages {
			recs, err := db.List(types.ListFilter{Stage: stage})
			if err != nil {
				return err
			}
			columns[stage] = recs
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(columns)
		}

		for _, stage := range types.BoardStages {
			recs := columns[stage]
			display.Header(fmt.Sprintf("%s (%d)", display.StageLabel(stage), len(recs)))
			if len(recs) == 0 {
				fmt.Println(display.Dim.Render("  (empty)"))
			}
			for _, rec := range recs {
				role := rec.Role
				if role != "" {
					role = " · " + display.Truncate(role, 30)
				}
				fmt.Printf("  %s %4d  %s%s  %s\n",
					display.PriorityDot(rec.Priority), rec.ID,
					display.Bold.Render(display.Truncate(rec.Company, 24)), role,
					display.Dim.Render(display.TimeAgo(rec.StageEnteredDate)))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
