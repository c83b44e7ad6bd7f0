package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application counts by status, stage and source",
	RunE: func(cmd *cobra.Command, args []string) error {
		byStatus, err := db.CountByStatus()
		if err != nil {
			return err
		}
		byStage, err := db.CountByStage()
		if err != nil {
			return err
		}
		bySource, err := db.CountBySource()
		if err != nil {
			return err
		}
		total := db.Count()
		upcoming, err := db.UpcomingInterviews(7)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"total":               total,
				"by_status":           byStatus,
				"by_stage":            byStage,
				"by_source":           bySource,
				"upcoming_interviews": len(upcoming),
			})
		}

		display.Header(fmt.Sprintf("Applications: %d", total))
		if len(upcoming) > 0 {
			fmt.Printf("  %s %d in the next 7 days\n", display.Muted.Render("interviews:"), len(upcoming))
		}

		fmt.Println()
		display.SubHeader("By status")
		for _, status := range []types.Status{
			types.StatusApplied, types.StatusInterviewScheduled, types.StatusInterviewed,
			types.StatusOffer, types.StatusAccepted, types.StatusRejected,
		} {
			if n := byStatus[string(status)]; n > 0 {
				fmt.Printf("  %s %d\n", display.StatusLabel(status), n)
			}
		}

		fmt.Println()
		display.SubHeader("By stage")
		for _, stage := range types.BoardStages {
			if n := byStage[string(stage)]; n > 0 {
				fmt.Printf("  %-12s %d\n", display.StageLabel(stage), n)
			}
		}

		fmt.Println()
		display.SubHeader("By source")
		for source, n := range bySource {
			fmt.Printf("  %-12s %d\n", source, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
