package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jobtrail/jobtrail/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	dbPath     string
	jsonOutput bool
	quietFlag  bool
	db         *store.DB
)

var rootCmd = &cobra.Command{
	Use:   "jt",
	Short: "jt - Job application tracking from your inbox",
	Long:  "Jobtrail: ingest Gmail, classify job emails, track applications through a kanban board.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB for commands that don't need it
		switch cmd.Name() {
		case "init", "help", "version", "quickstart":
			return nil
		}

		// Discover database
		path := dbPath
		if path == "" {
			path = store.DiscoverDB()
		}
		if path == "" {
			return fmt.Errorf("no jobtrail database found — run 'jt init' first")
		}

		var err error
		db, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jt version %s\n", Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .jobtrail/ in the project root",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := store.FindProjectRoot()
		if root == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("could not determine home directory: %w", err)
			}
			root = home
		}

		path := filepath.Join(root, ".jobtrail", "jobs.db")
		s, err := store.Open(path)
		if err != nil {
			return err
		}
		s.Close()

		if !quietFlag {
			fmt.Printf("Initialized jobtrail at %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: auto-discover .jobtrail/jobs.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
