package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vanai-hackathon/surveyscope/internal/config"
	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// createTestReport creates a fully analysed report for testing.
func createTestReport() *model.SurveyReport {
	report := model.NewSurveyReport("survey.csv")
	report.Rows = 10
	report.Columns = 5
	report.TargetResponses = 1001
	report.Categories = &model.ColumnCategories{
		OpenEnded:   []string{config.DefaultQuoteColumn},
		Sentiment:   []string{config.DefaultQuoteColumn + "_sentiment_percentage"},
		Demographic: config.NewConfig().Columns.Demographics(),
	}
	report.Age = model.NewDistribution(config.DefaultAgeColumn, []model.Frequency{
		{Value: "18-34", Count: 5},
		{Value: "35-54", Count: 5},
	}, 10, 0)
	report.Location = model.NewDistribution(config.DefaultLocationColumn, []model.Frequency{
		{Value: "Vancouver", Count: 10},
	}, 10, 5)
	report.Quotes = &model.QuoteSample{
		Column: config.DefaultQuoteColumn,
		Quotes: []model.Quote{
			{Number: 1, Text: "First piece of advice"},
			{Number: 2, Text: "Second piece of advice"},
			{Number: 3, Text: "Third piece of advice"},
		},
		NonMissing: 10,
		Remaining:  7,
	}
	report.Sentiment = &model.SentimentSummary{
		Question:          "Q17",
		Count:             10,
		Mean:              0.5,
		NegativeThreshold: 0.1,
		PositiveThreshold: 0.9,
		VeryNegative:      1,
		VeryPositive:      1,
	}
	report.CompletedSteps = []string{
		model.StepLoad, model.StepClassify, model.StepDemographics, model.StepQuotes, model.StepSentiment,
	}
	return report
}

const wantSimpleBody = `■ BC AI Survey Data Explorer
==================================================
■ Loading survey data...
■ Loaded 10 responses with 5 columns

■ Dataset Overview:
   • Total responses: 10
   • Total columns: 5
   • Response rate: ~10 out of 1,001 target

■ Column Categories:
   • Open-ended responses (_OE): 1
   • Sentiment scores: 1
   • Demographic fields: 3

■ Demographics Snapshot:
   • 18-34: 5 (50.0%)
   • 35-54: 5 (50.0%)

■ Geographic Distribution:
   • Vancouver: 10 (100.0%)


■ Sample Quotes (Open-Ended Responses):
   (These are the storytelling goldmines!)

   ■ Advice to BC Leaders (Q17):
      1. "First piece of advice"
      2. "Second piece of advice"
      3. "Third piece of advice"
      ... and 7 more responses!

■ Sentiment Patterns:
   • Average sentiment (Q17): 0.50 (0=negative, 1=positive)
   • Very negative responses (<0.1): 1
   • Very positive responses (>0.9): 1

■ Ready to Dive Deeper?
`

// TestSimpleWriter tests the console report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.HasPrefix(output, wantSimpleBody) {
			t.Errorf("unexpected output:\n%s", output)
		}
		if !strings.Contains(output, "   5. Find the extreme voices (99%+ positive/negative sentiment)\n") {
			t.Error("expected exploration tips")
		}
		if !strings.Contains(output, "   • Load data: df = pd.read_csv('survey.csv')\n") {
			t.Error("expected next steps to name the data file")
		}
		if !strings.HasSuffix(output, "   Your job is to help those voices be heard!\n") {
			t.Error("expected sign-off at the end")
		}
	})

	t.Run("writes missing file message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteMissing("data.csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "■ Data file not found: data.csv\n" +
			"Make sure you're running this script from the repository root directory.\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("load failure prints banner and error only", func(t *testing.T) {
		t.Parallel()

		report := model.NewSurveyReport("survey.csv")
		report.Error = errors.New("failed to parse CSV: bad row")
		report.ErrorMessage = report.Error.Error()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "■ BC AI Survey Data Explorer\n" +
			strings.Repeat("=", 50) + "\n" +
			"■ Loading survey data...\n" +
			"■ Error loading data: failed to parse CSV: bad row\n" +
			errorHint + "\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("keeps completed sections before error", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.CompletedSteps = report.CompletedSteps[:2]
		report.Error = errors.New("boom")
		report.ErrorMessage = "boom"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "■ Column Categories:") {
			t.Error("expected categories before the error")
		}
		if strings.Contains(output, "Demographics Snapshot") || strings.Contains(output, "Ready to Dive Deeper") {
			t.Error("expected later sections to be skipped")
		}
		if !strings.Contains(output, "■ Error loading data: boom\n") {
			t.Error("expected error line")
		}
	})

	t.Run("negative remaining and missing mean", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Quotes.Quotes = report.Quotes.Quotes[:1]
		report.Quotes.Remaining = -2
		report.Sentiment.Count = 0

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "      ... and -2 more responses!\n") {
			t.Error("expected negative remaining count")
		}
		if !strings.Contains(output, "Average sentiment (Q17): nan") {
			t.Error("expected nan mean")
		}
	})

	t.Run("thousands separators", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Rows = 12345
		report.Quotes.Remaining = 12342

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"■ Loaded 12345 responses",
			"   • Total responses: 12,345\n",
			"   • Response rate: ~12345 out of 1,001 target\n",
			"      ... and 12,342 more responses!\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("absent sections keep headers", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Quotes = nil
		report.Sentiment = nil

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		want := "   (These are the storytelling goldmines!)\n\n■ Sentiment Patterns:\n\n■ Ready to Dive Deeper?\n"
		if !strings.Contains(output, want) {
			t.Errorf("expected empty quote and sentiment sections, got:\n%s", output)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# BC AI Survey Data Explorer",
			"## Column Categories",
			"## Age",
			"```mermaid",
			"pie",
			"Respondents by Age",
			"18-34",
			"50.0%",
			"## Sample Quotes",
			"... and 7 more responses!",
			"## Sentiment Patterns",
			"Load, Classify, Demographics, Quotes, Sentiment",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes caution on error", func(t *testing.T) {
		t.Parallel()

		report := model.NewSurveyReport("survey.csv")
		report.Error = errors.New("bad")
		report.ErrorMessage = "bad"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected caution alert")
		}
		if strings.Contains(buf.String(), "Ready to Dive Deeper") {
			t.Error("expected no guidance after error")
		}
	})

	t.Run("writes missing file", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteMissing("data.csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "data.csv") {
			t.Error("expected path in output")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint(), WithVersion("v1.2.3"))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Version string `json:"version"`
			Report  struct {
				Rows   int `json:"rows"`
				Quotes struct {
					Remaining int `json:"remaining"`
				} `json:"quotes"`
			} `json:"report"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" || decoded.Report.Rows != 10 || decoded.Report.Quotes.Remaining != 7 {
			t.Errorf("unexpected decoded report %+v", decoded)
		}
	})

	t.Run("compact output is one line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected single line of JSON")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteMissing("data.csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"error":"data file not found"`) {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	if _, ok := NewWriter(config.FormatText, &bytes.Buffer{}, "").(*SimpleWriter); !ok {
		t.Error("expected SimpleWriter for text")
	}
	if _, ok := NewWriter(config.FormatMarkdown, &bytes.Buffer{}, "").(*MarkdownWriter); !ok {
		t.Error("expected MarkdownWriter for markdown")
	}
	if _, ok := NewWriter(config.FormatJSON, &bytes.Buffer{}, "").(*JSONWriter); !ok {
		t.Error("expected JSONWriter for json")
	}
}
