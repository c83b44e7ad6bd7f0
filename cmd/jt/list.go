package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var (
	listStatuses []string
	listStage    string
	listCompany  string
	listSource   string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := types.ListFilter{
			Company: listCompany,
			Source:  listSource,
			Limit:   listLimit,
		}
		for _, s := range listStatuses {
			status := types.Status(strings.TrimSpace(s))
			if !types.IsValidStatus(status) {
				return fmt.Errorf("invalid status %q", s)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
		if listStage != "" {
			stage := types.Stage(listStage)
			if !types.IsValidStage(stage) {
				return fmt.Errorf("invalid stage %q", listStage)
			}
			filter.Stage = stage
		}

		recs, err := db.List(filter)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		}

		if len(recs) == 0 {
			fmt.Println("No applications found.")
			return nil
		}

		display.Header(fmt.Sprintf("Applications (%d)", len(recs)))
		for _, rec := range recs {
			display.ApplicationRow(rec)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "Filter by status (repeatable)")
	listCmd.Flags().StringVar(&listStage, "stage", "", "Filter by board stage")
	listCmd.Flags().StringVar(&listCompany, "company", "", "Filter by company substring")
	listCmd.Flags().StringVar(&listSource, "source", "", "Filter by source (gmail, manual, demo)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Limit results (0 = all)")
	rootCmd.AddCommand(listCmd)
}
