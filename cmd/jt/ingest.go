package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/auth"
	"github.com/jobtrail/jobtrail/internal/classify"
	"github.com/jobtrail/jobtrail/internal/display"
	"github.com/jobtrail/jobtrail/internal/gmail"
	"github.com/jobtrail/jobtrail/internal/llm"
	"github.com/jobtrail/jobtrail/internal/pipeline"
)

var (
	ingestQuery       string
	ingestMax         int64
	ingestCredentials string
	ingestNoAI        bool
	ingestVerbose     bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch job emails from Gmail and record applications",
	Long:  "Ingest searches Gmail for interview-related emails, classifies each one and upserts application records into the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment variables win either way.
		_ = godotenv.Load()

		log := newLogger(ingestVerbose)

		var gen classify.Generator
		if !ingestNoAI {
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				gen = llm.NewClient(llm.Config{APIKey: key, Model: os.Getenv("OPENAI_MODEL")})
			} else {
				log.Warn().Msg("OPENAI_API_KEY not set, using rule-based classification only")
			}
		}
		classifier := classify.NewClassifier(gen, log)

		svc, err := auth.LoadGmailService(cmd.Context(), ingestCredentials)
		if err != nil {
			return fmt.Errorf("gmail auth: %w", err)
		}
		source := gmail.NewClient(svc)

		if !quietFlag {
			fmt.Println("Ingesting job emails...")
		}

		p := pipeline.New(classifier, db, log)
		summary, err := p.Run(cmd.Context(), source, ingestQuery, ingestMax)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		if !quietFlag {
			fmt.Println()
			display.SuccessMsg("Done! %d fetched, %d recorded, %d promotional, %d irrelevant, %d failed.",
				summary.Fetched, summary.Processed, summary.SkippedPromo, summary.SkippedIrrelevant, summary.Failed)
		}
		return nil
	},
}

// newLogger builds a console logger for pipeline diagnostics. User-facing
// output goes through the display package instead.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func init() {
	ingestCmd.Flags().StringVar(&ingestQuery, "query", "", "Gmail search query (default: interview-related subjects)")
	ingestCmd.Flags().Int64Var(&ingestMax, "max", pipeline.DefaultMaxResults, "Maximum emails to fetch")
	ingestCmd.Flags().StringVar(&ingestCredentials, "credentials", "credentials.json", "Path to Google OAuth credentials.json")
	ingestCmd.Flags().BoolVar(&ingestNoAI, "no-ai", false, "Skip AI classification, use rules only")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Log per-email classification decisions")
	rootCmd.AddCommand(ingestCmd)
}
