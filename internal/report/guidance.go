package report

import (
	"fmt"

	"github.com/vanai-hackathon/surveyscope/internal/config"
)

// explorationTips are the fixed hints printed after a successful run.
var explorationTips = []string{
	"Focus on open-ended columns (*_OE) for authentic quotes",
	"Cross-reference sentiment with demographics",
	"Look for patterns in AI experience vs attitudes",
	"Hunt for geographic differences (Vancouver vs rural)",
	"Find the extreme voices (99%+ positive/negative sentiment)",
}

// nextSteps returns the suggested follow-up commands for dataFile.
func nextSteps(dataFile string) []string {
	return []string{
		fmt.Sprintf("Load data: df = pd.read_csv('%s')", dataFile),
		"Explore quotes: df['Q17_Advice_BC_Leaders_text_OE'].dropna()",
		"Check sentiment: df['Q17_Advice_BC_Leaders_text_OE_sentiment_percentage']",
		"Filter by demographics: df[df['AgeRollup_Broad'] == '18-34']",
		"Find patterns: df.groupby('Q1_Experience_with_AI')['sentiment_col'].mean()",
		"Query with SQL: surveyscope query \"SELECT AgeRollup_Broad, COUNT(*) FROM responses GROUP BY 1\"",
		"Compare groups: surveyscope crosstab --by Q1_Experience_with_AI",
	}
}

// signOff closes a successful report.
var signOff = []string{
	"Remember: Every row is a real British Columbian's voice.",
	"Your job is to help those voices be heard!",
}

const (
	// missingFileHint follows the missing-file message.
	missingFileHint = "Make sure you're running this script from the repository root directory."

	// errorHint follows a load or analysis error.
	errorHint = "Make sure the file is a comma-separated table with a header row."
)

// quoteHeading names the quote section after its column. The default
// column gets its survey wording.
func quoteHeading(column string) string {
	if column == config.DefaultQuoteColumn {
		return "Advice to BC Leaders (Q17)"
	}
	return column
}
