package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/vanai-hackathon/surveyscope/internal/config"
	"github.com/vanai-hackathon/surveyscope/internal/database"
	"github.com/vanai-hackathon/surveyscope/internal/dataset"
	"github.com/vanai-hackathon/surveyscope/internal/pipeline"
)

// NewQueryCmd creates the query command.
func NewQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <SQL>",
		Short: "Run a SQL query against the survey",
		Long: `Query loads the survey into an in-memory SQLite database and runs one
SQL statement against it.

The table is called "responses" and has one column per survey field.
Quote column names that contain spaces or other punctuation with double
quotes. Numeric cells are stored as numbers, missing cells as NULL, so
AVG and COUNT only see real values. Nothing is written to disk.

Examples:
  # Respondents per age bracket
  surveyscope query "SELECT AgeRollup_Broad, COUNT(*) FROM responses GROUP BY 1 ORDER BY 2 DESC"

  # Strongly negative advice, as JSON
  surveyscope query --format json \
    "SELECT Q17_Advice_BC_Leaders_text_OE FROM responses
     WHERE Q17_Advice_BC_Leaders_text_OE_sentiment_percentage < 0.05"`,
		Args: cobra.ExactArgs(1),
		RunE: runQueryCmd,
	}
}

// runQueryCmd executes the query command.
func runQueryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	ctx, stop := signalContext(cmd)
	defer stop()

	db, _, err := openResponses(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rs, err := db.Query(ctx, args[0])
	if err != nil {
		return err
	}

	return writeTable(cmd.OutOrStdout(), cfg.Format, rs.Columns, rs.Rows, rs)
}

// openResponses loads the configured data file into an in-memory database.
// The parsed dataset is returned alongside for column lookups.
func openResponses(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.ResponseDB, *dataset.Dataset, error) {
	ds, err := dataset.Load(cfg.DataFile, pipeline.DatasetOptions(cfg)...)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.OpenMemory(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := db.LoadDataset(ctx, ds); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to load %s: %w", cfg.DataFile, err)
	}

	logger.Debug("responses loaded",
		"file", cfg.DataFile,
		"rows", ds.Rows(),
		"columns", ds.Columns(),
	)
	return db, ds, nil
}

// writeTable renders rows as a Markdown table, or v as JSON when format
// is json. Markdown tables read well in a terminal too, so text and
// markdown share the same rendering.
func writeTable(out io.Writer, format string, header []string, rows [][]string, v any) error {
	if format == config.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	md := markdown.NewMarkdown(out)
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainTextf("(%d rows)", len(rows))
	return md.Build()
}
