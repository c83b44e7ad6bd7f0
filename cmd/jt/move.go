package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/types"
)

var moveNotes string

var moveCmd = &cobra.Command{
	Use:   "move <id> <stage>",
	Short: "Move an application to a board stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stage := types.Stage(args[1])
		if !types.IsValidStage(stage) {
			return fmt.Errorf("invalid stage %q (want one of: backlog, applied, screening, interview, final, closed)", args[1])
		}

		if err := db.MoveStage(id, stage, moveNotes, false); err != nil {
			return err
		}

		if !quietFlag {
			display.SuccessMsg("#%d -> %s", id, stage)
		}
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveNotes, "notes", "", "Note to attach to the transition")
	rootCmd.AddCommand(moveCmd)
}
