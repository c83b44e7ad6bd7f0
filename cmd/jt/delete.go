package main

import (
	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an application and its notes and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		rec, err := db.Get(id)
		if err != nil {
			return err
		}
		if err := db.Delete(id); err != nil {
			return err
		}

		if !quietFlag {
			display.SuccessMsg("Deleted #%d %s", id, rec.Company)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
