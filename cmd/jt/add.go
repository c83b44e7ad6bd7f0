package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var (
	addRole    string
	addStatus  string
	addApplied string
	addNotes   string
)

var addCmd = &cobra.Command{
	Use:   "add <company>",
	Short: "Record an application manually",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := types.Status(addStatus)
		if !types.IsValidStatus(status) {
			return fmt.Errorf("invalid status %q", addStatus)
		}

		applied := addApplied
		if applied == "" {
			applied = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", applied); err != nil {
			return fmt.Errorf("invalid --applied date %q (want YYYY-MM-DD)", applied)
		}

		rec := &types.ApplicationRecord{
			Company:     args[0],
			Role:        addRole,
			Source:      types.SourceManual,
			Status:      status,
			DateApplied: applied,
			Notes:       addNotes,
		}

		id, created, err := db.Upsert(rec)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"id": id, "created": created})
		}

		if created {
			display.SuccessMsg("Added #%d %s", id, rec.Company)
		} else {
			display.SuccessMsg("Updated #%d %s", id, rec.Company)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addRole, "role", "", "Job role")
	addCmd.Flags().StringVar(&addStatus, "status", string(types.StatusApplied), "Initial status")
	addCmd.Flags().StringVar(&addApplied, "applied", "", "Application date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-text notes")
	rootCmd.AddCommand(addCmd)
}
