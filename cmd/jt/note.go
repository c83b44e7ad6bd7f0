package main

import (
	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
)

var noteType string

var noteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Attach a note to an application",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// Make sure the application exists before writing.
		if _, err := db.Get(id); err != nil {
			return err
		}

		noteID, err := db.AddNote(id, noteType, args[1])
		if err != nil {
			return err
		}

		if !quietFlag {
			display.SuccessMsg("Note %d added to #%d", noteID, id)
		}
		return nil
	},
}

func init() {
	noteCmd.Flags().StringVar(&noteType, "type", "general", "Note type (general, interview, followup)")
	rootCmd.AddCommand(noteCmd)
}
