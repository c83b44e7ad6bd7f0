package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
)

var interviewsDays int

var interviewsCmd = &cobra.Command{
	Use:   "interviews",
	Short: "List upcoming interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := db.UpcomingInterviews(interviewsDays)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		}

		if len(recs) == 0 {
			fmt.Printf("No interviews in the next %d days.\n", interviewsDays)
			return nil
		}

		display.Header(fmt.Sprintf("Upcoming interviews (%d)", len(recs)))
		for _, rec := range recs {
			round := rec.InterviewRound
			if round == "" {
				round = "unknown"
			}
			fmt.Printf("  %4d  %s  %s  %s round  %s\n",
				rec.ID,
				display.Bold.Render(fmt.Sprintf("%-24s", display.Truncate(rec.Company, 24))),
				rec.InterviewDate, round,
				display.Dim.Render(display.Truncate(rec.Role, 30)))
		}
		return nil
	},
}

func init() {
	interviewsCmd.Flags().IntVar(&interviewsDays, "days", 7, "Look-ahead window in days")
	rootCmd.AddCommand(interviewsCmd)
}
