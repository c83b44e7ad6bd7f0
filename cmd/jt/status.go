package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set an application's status",
	Long:  "Set the status of an application. The board stage is derived from the new status and a stage transition is recorded when it changes.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		status := types.Status(args[1])
		if !types.IsValidStatus(status) {
			return fmt.Errorf("invalid status %q (want one of: applied, interview_scheduled, interviewed, rejected, offer, accepted)", args[1])
		}

		if err := db.UpdateStatus(id, status); err != nil {
			return err
		}

		if !quietFlag {
			display.SuccessMsg("#%d -> %s", id, status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
