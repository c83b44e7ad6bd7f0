package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/display"
)

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Quick start guide for jt",
	Long:  "Display a quick start guide showing common jt workflows.",
	Run: func(cmd *cobra.Command, args []string) {
		b := display.Bold.Render
		a := display.Success.Render
		d := display.Dim.Render

		fmt.Printf("\n%s\n\n", b("jt — Job Application Tracking from Your Inbox"))
		fmt.Println("Ingest Gmail, classify job emails, track applications through a board.")
		fmt.Println()

		fmt.Println(b("GETTING STARTED"))
		fmt.Printf("  %s           Initialize .jobtrail/jobs.db\n", a("jt init"))
		fmt.Printf("  %s         Fetch and classify job emails from Gmail\n", a("jt ingest"))
		fmt.Printf("  %s  Rules only, no OpenAI call\n", a("jt ingest --no-ai"))
		fmt.Printf("  %s\n", d("  Needs credentials.json (Google OAuth) in the working directory;"))
		fmt.Printf("  %s\n\n", d("  set OPENAI_API_KEY (env or .env) to enable AI classification."))

		fmt.Println(b("TRACKING APPLICATIONS"))
		fmt.Printf("  %s  Record an application yourself\n", a(`jt add Acme --role "Backend Engineer"`))
		fmt.Printf("  %s           List everything, newest first\n", a("jt list"))
		fmt.Printf("  %s    Filter by status\n", a("jt list --status offer"))
		fmt.Printf("  %s        Full record with notes and history\n\n", a("jt show ID"))

		fmt.Println(b("THE BOARD"))
		fmt.Printf("  %s          Applications grouped by stage\n", a("jt board"))
		fmt.Printf("  %s  Move a card between columns\n", a("jt move ID screening"))
		fmt.Printf("  %s  Set status; the stage follows\n\n", a("jt status ID rejected"))

		fmt.Println(b("STAYING ON TOP OF IT"))
		fmt.Printf("  %s     Interviews in the next 7 days\n", a("jt interviews"))
		fmt.Printf("  %s          Counts by status, stage and source\n", a("jt stats"))
		fmt.Printf("  %s  Attach a note to an application\n\n", a(`jt note ID "sent thank-you"`))

		fmt.Println(b("JSON OUTPUT"))
		fmt.Printf("  All commands support %s for machine-readable output:\n", a("--json"))
		fmt.Printf("  %s\n", a("jt list --json"))
		fmt.Printf("  %s\n\n", a("jt ingest --json"))
	},
}

func init() {
	rootCmd.AddCommand(quickstartCmd)
}
