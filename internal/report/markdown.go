package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing findings in issues and wikis.
type MarkdownWriter struct {
	baseWriter

	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// WriteMissing writes a caution block for a missing data file.
func (w *MarkdownWriter) WriteMissing(path string) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("BC AI Survey Data Explorer")
	md.PlainText("")
	md.Cautionf("Data file not found: `%s`. %s", path, missingFileHint)
	return len(md.String()), md.Build()
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SurveyReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	if report.Completed(model.StepClassify) {
		w.writeCategories(md, report.Categories)
	}
	if report.Completed(model.StepDemographics) {
		w.writeDistribution(md, "Age", report.Age)
		w.writeAgeChart(md, report.Age)
		w.writeDistribution(md, "Geographic Distribution", report.Location)
		w.writeDistribution(md, "AI Experience Levels", report.Experience)
	}
	if report.Completed(model.StepQuotes) {
		w.writeQuotes(md, report.Quotes)
	}
	if report.Completed(model.StepSentiment) {
		w.writeSentiment(md, report.Sentiment)
	}

	if report.Failed() {
		md.Cautionf("Error loading data: %s. %s", report.ErrorMessage, errorHint)
		md.PlainText("")
	} else {
		w.writeGuidance(md, report)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SurveyReport) {
	md.H1("BC AI Survey Data Explorer")
	md.PlainText("")

	if !report.Completed(model.StepLoad) {
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows: [][]string{
				{"Data File", "`" + report.DataFile + "`"},
			},
		})
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Data File", "`" + report.DataFile + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Total Responses", w.printer.Sprintf("%d", report.Rows)},
			{"Total Columns", w.printer.Sprintf("%d", report.Columns)},
			{"Response Rate", w.printer.Sprintf("~%d out of %d target", report.Rows, report.TargetResponses)},
			{"Steps", completedSteps(report.CompletedSteps)},
		},
	})
	md.PlainText("")
}

// completedSteps renders step names as a readable list, e.g. "Load, Classify".
func completedSteps(steps []string) string {
	caser := cases.Title(language.English)
	titled := make([]string, len(steps))
	for i, s := range steps {
		titled[i] = caser.String(s)
	}
	return strings.Join(titled, ", ")
}

func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, c *model.ColumnCategories) {
	md.H2("Column Categories")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Columns"},
		Rows: [][]string{
			{"Open-ended responses (_OE)", strconv.Itoa(len(c.OpenEnded))},
			{"Sentiment scores", strconv.Itoa(len(c.Sentiment))},
			{"Demographic fields", strconv.Itoa(len(c.Demographic))},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, title string, d *model.Distribution) {
	if d == nil {
		return
	}

	md.H2(title)
	md.PlainText("")

	rows := make([][]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		rows = append(rows, []string{
			e.Value,
			w.printer.Sprintf("%d", e.Count),
			strconv.FormatFloat(e.Percent, 'f', 1, 64) + "%",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Value", "Count", "Percent"},
		Rows:   rows,
	})
	md.PlainText("")

	if d.Truncated() {
		md.Note(w.printer.Sprintf("Showing the top %d of %d values.", len(d.Entries), d.Distinct))
		md.PlainText("")
	}
}

// writeAgeChart writes a mermaid pie chart of the age brackets.
func (w *MarkdownWriter) writeAgeChart(md *markdown.Markdown, d *model.Distribution) {
	if d == nil || len(d.Entries) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Respondents by Age"),
		piechart.WithShowData(true),
	)
	for _, e := range d.Entries {
		chart.LabelAndIntValue(e.Value, uint64(e.Count)) //nolint:gosec // counts are never negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeQuotes(md *markdown.Markdown, q *model.QuoteSample) {
	md.H2("Sample Quotes")
	md.PlainText("")

	if q == nil {
		md.Note("The open-ended advice column is not part of this dataset.")
		md.PlainText("")
		return
	}

	md.PlainTextf("**%s**", quoteHeading(q.Column))
	md.PlainText("")
	for _, quote := range q.Quotes {
		md.PlainTextf("%d. \"%s\"", quote.Number, quote.Text)
	}
	md.PlainText("")
	md.PlainText(w.printer.Sprintf("... and %d more responses!", q.Remaining))
	md.PlainText("")
}

func (w *MarkdownWriter) writeSentiment(md *markdown.Markdown, s *model.SentimentSummary) {
	md.H2("Sentiment Patterns")
	md.PlainText("")

	if s == nil {
		md.Note("No sentiment column matched the selected question.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Column", "`" + s.Column + "`"},
			{"Average sentiment (" + s.Question + ")", formatMean(s)},
			{"Very negative (<" + formatThreshold(s.NegativeThreshold) + ")", strconv.Itoa(s.VeryNegative)},
			{"Very positive (>" + formatThreshold(s.PositiveThreshold) + ")", strconv.Itoa(s.VeryPositive)},
			{"Scored responses", w.printer.Sprintf("%d", s.Count)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeGuidance(md *markdown.Markdown, report *model.SurveyReport) {
	md.H2("Ready to Dive Deeper?")
	md.PlainText("")

	md.H3("Hot Tips for Exploration")
	md.PlainText("")
	for i, tip := range explorationTips {
		md.PlainTextf("%d. %s", i+1, tip)
	}
	md.PlainText("")

	md.H3("Suggested Next Steps")
	md.PlainText("")
	md.BulletList(nextSteps(report.DataFile)...)
	md.PlainText("")

	md.Tip(strings.Join(signOff, " "))
}
