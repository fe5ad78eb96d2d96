package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanai-hackathon/surveyscope/internal/config"
)

// NewRootCmd creates the root command for surveyscope. Run without a
// subcommand it explores the survey.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surveyscope",
		Short: "Guided first look at the BC AI survey data",
		Long: `surveyscope loads the BC AI survey export and prints a summary to get
you started: dataset size, column categories, demographics, a few quotes
from the open-ended answers and the sentiment spread.

Run it from the directory that holds the export, or point it at the file
with --file. Problems with the data are reported in the summary itself;
the explorer always exits with status 0.

Examples:
  # Explore the default export in the current directory
  surveyscope

  # Explore another export and share the result as Markdown
  surveyscope --file round4.csv --format markdown > summary.md

  # Ask your own questions with SQL
  surveyscope query "SELECT AgeRollup_Broad, COUNT(*) FROM responses GROUP BY 1"`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExploreCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("file", config.DefaultDataFile, "Survey CSV file to explore")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .surveyscope in current directory or XDG config dir)")
	cmd.PersistentFlags().String("format", config.FormatText, "Output format: text, markdown or json")

	// Add subcommands
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewCrosstabCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
