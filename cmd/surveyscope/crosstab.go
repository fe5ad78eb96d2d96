package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vanai-hackathon/surveyscope/internal/pipeline"
)

// errNoScoreColumn is returned when --score is not given and no sentiment
// column matches the configured question.
var errNoScoreColumn = errors.New("no sentiment column found for the configured question (use --score)")

// NewCrosstabCmd creates the crosstab command.
func NewCrosstabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crosstab",
		Short: "Compare mean sentiment across a demographic field",
		Long: `Crosstab groups respondents by one column and prints the mean score of
another column for each group, highest first.

Only numeric scores are counted. Respondents with a missing group value
are left out. Without --score, the sentiment column of the configured
question (Q17 by default) is used.

Examples:
  # Does AI experience change the tone of advice to leaders?
  surveyscope crosstab --by Q1_Experience_with_AI

  # Compare regions on another sentiment column
  surveyscope crosstab --by Q1_Location_in_BC --score Q12_text_OE_sentiment_percentage`,
		Args: cobra.NoArgs,
		RunE: runCrosstabCmd,
	}

	cmd.Flags().String("by", "", "Column to group respondents by (required)")
	cmd.Flags().String("score", "", "Numeric column to average (default: sentiment column of the configured question)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

// runCrosstabCmd executes the crosstab command.
func runCrosstabCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	by, err := cmd.Flags().GetString("by")
	if err != nil {
		return err
	}
	score, err := cmd.Flags().GetString("score")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)
	ctx, stop := signalContext(cmd)
	defer stop()

	db, ds, err := openResponses(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if score == "" {
		col, ok := pipeline.SentimentColumn(ds, cfg.Columns)
		if !ok {
			return errNoScoreColumn
		}
		score = col
	}

	means, err := db.MeanByGroup(ctx, by, score)
	if err != nil {
		return err
	}

	rows := make([][]string, len(means))
	for i, m := range means {
		rows[i] = []string{m.Group, strconv.FormatFloat(m.Mean, 'f', 2, 64), strconv.Itoa(m.Count)}
	}
	return writeTable(cmd.OutOrStdout(), cfg.Format, []string{by, "Mean " + score, "Scored"}, rows, means)
}
