package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application in full",
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

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}

		display.ApplicationDetail(rec)

		notes, err := db.ListNotes(id)
		if err != nil {
			return err
		}
		if len(notes) > 0 {
			fmt.Println()
			display.SubHeader("Notes")
			for _, n := range notes {
				fmt.Printf("  [%s] %s %s\n", n.NoteType, n.Content, display.Dim.Render(display.TimeAgo(n.CreatedAt)))
			}
		}

		transitions, err := db.Transitions(id)
		if err != nil {
			return err
		}
		if len(transitions) > 0 {
			fmt.Println()
			display.SubHeader("History")
			for _, tr := range transitions {
				from := string(tr.FromStage)
				if from == "" {
					from = "(new)"
				}
				auto := ""
				if tr.Automated {
					auto = display.Dim.Render(" auto")
				}
				fmt.Printf("  %s -> %s%s %s\n", from, tr.ToStage, auto, display.Dim.Render(display.TimeAgo(tr.TransitionDate)))
			}
		}
		return nil
	},
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid application id %q", arg)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
