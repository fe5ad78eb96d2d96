package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// SimpleWriter outputs the console summary.
type SimpleWriter struct {
	baseWriter

	// printer formats counts with thousands separators.
	printer *message.Printer
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// WriteMissing writes the two-line missing-file message and nothing else.
func (w *SimpleWriter) WriteMissing(path string) (int, error) {
	return fmt.Fprintf(w.output, "■ Data file not found: %s\n%s\n", path, missingFileHint)
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.SurveyReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if report.Completed(model.StepClassify) {
		w.writeCategories(&sb, report.Categories)
	}
	if report.Completed(model.StepDemographics) {
		w.writeDemographics(&sb, report)
	}
	if report.Completed(model.StepQuotes) {
		w.writeQuotes(&sb, report.Quotes)
	}
	if report.Completed(model.StepSentiment) {
		w.writeSentiment(&sb, report.Sentiment)
	}

	if report.Failed() {
		fmt.Fprintf(&sb, "■ Error loading data: %s\n", report.ErrorMessage)
		sb.WriteString(errorHint + "\n")
	} else {
		w.writeGuidance(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the banner and, once loaded, the dataset overview.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.SurveyReport) {
	sb.WriteString("■ BC AI Survey Data Explorer\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
	sb.WriteString("■ Loading survey data...\n")

	if !report.Completed(model.StepLoad) {
		return
	}

	fmt.Fprintf(sb, "■ Loaded %d responses with %d columns\n\n", report.Rows, report.Columns)

	sb.WriteString("■ Dataset Overview:\n")
	fmt.Fprintf(sb, "   • Total responses: %s\n", w.printer.Sprintf("%d", report.Rows))
	fmt.Fprintf(sb, "   • Total columns: %s\n", w.printer.Sprintf("%d", report.Columns))
	fmt.Fprintf(sb, "   • Response rate: ~%d out of %s target\n\n",
		report.Rows, w.printer.Sprintf("%d", report.TargetResponses))
}

func (w *SimpleWriter) writeCategories(sb *strings.Builder, c *model.ColumnCategories) {
	sb.WriteString("■ Column Categories:\n")
	fmt.Fprintf(sb, "   • Open-ended responses (_OE): %d\n", len(c.OpenEnded))
	fmt.Fprintf(sb, "   • Sentiment scores: %d\n", len(c.Sentiment))
	fmt.Fprintf(sb, "   • Demographic fields: %d\n\n", len(c.Demographic))
}

// writeDemographics writes the three distributions. The blank line after
// each block is written even when its column is absent.
func (w *SimpleWriter) writeDemographics(sb *strings.Builder, report *model.SurveyReport) {
	sb.WriteString("■ Demographics Snapshot:\n")
	writeEntries(sb, report.Age)
	sb.WriteString("\n")

	if report.Location != nil {
		sb.WriteString("■ Geographic Distribution:\n")
		writeEntries(sb, report.Location)
	}
	sb.WriteString("\n")

	if report.Experience != nil {
		sb.WriteString("■ AI Experience Levels:\n")
		writeEntries(sb, report.Experience)
	}
	sb.WriteString("\n")
}

func writeEntries(sb *strings.Builder, d *model.Distribution) {
	if d == nil {
		return
	}
	for _, e := range d.Entries {
		fmt.Fprintf(sb, "   • %s: %d (%.1f%%)\n", e.Value, e.Count, e.Percent)
	}
}

func (w *SimpleWriter) writeQuotes(sb *strings.Builder, q *model.QuoteSample) {
	sb.WriteString("■ Sample Quotes (Open-Ended Responses):\n")
	sb.WriteString("   (These are the storytelling goldmines!)\n\n")

	if q == nil {
		return
	}

	fmt.Fprintf(sb, "   ■ %s:\n", quoteHeading(q.Column))
	for _, quote := range q.Quotes {
		fmt.Fprintf(sb, "      %d. \"%s\"\n", quote.Number, quote.Text)
	}
	fmt.Fprintf(sb, "      ... and %s more responses!\n\n", w.printer.Sprintf("%d", q.Remaining))
}

func (w *SimpleWriter) writeSentiment(sb *strings.Builder, s *model.SentimentSummary) {
	sb.WriteString("■ Sentiment Patterns:\n")

	if s != nil {
		fmt.Fprintf(sb, "   • Average sentiment (%s): %s (0=negative, 1=positive)\n", s.Question, formatMean(s))
		fmt.Fprintf(sb, "   • Very negative responses (<%s): %d\n", formatThreshold(s.NegativeThreshold), s.VeryNegative)
		fmt.Fprintf(sb, "   • Very positive responses (>%s): %d\n", formatThreshold(s.PositiveThreshold), s.VeryPositive)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeGuidance(sb *strings.Builder, report *model.SurveyReport) {
	sb.WriteString("■ Ready to Dive Deeper?\n\n")

	sb.WriteString("   ■ Hot Tips for Exploration:\n")
	for i, tip := range explorationTips {
		fmt.Fprintf(sb, "   %d. %s\n", i+1, tip)
	}
	sb.WriteString("\n")

	sb.WriteString("   ■ Suggested Next Steps:\n")
	for _, step := range nextSteps(report.DataFile) {
		fmt.Fprintf(sb, "   • %s\n", step)
	}
	sb.WriteString("\n")

	sb.WriteString("■ Happy Data Storytelling!\n")
	for _, line := range signOff {
		fmt.Fprintf(sb, "   %s\n", line)
	}
}

// formatMean renders the mean with two decimals, or nan without values.
func formatMean(s *model.SentimentSummary) string {
	if !s.HasMean() {
		return "nan"
	}
	return strconv.FormatFloat(s.Mean, 'f', 2, 64)
}

// formatThreshold renders a threshold in its shortest form, e.g. 0.1.
func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
