package report

import (
	"io"

	"github.com/vanai-hackathon/surveyscope/internal/config"
	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// Writer defines the interface for report output.
// Implementations write exploration results in various formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.SurveyReport) (int, error)

	// WriteMissing reports that the data file at path does not exist.
	WriteMissing(path string) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// NewWriter returns the writer for format. Unknown formats fall back to
// the console summary; config.Validate rejects them earlier.
func NewWriter(format string, output io.Writer, version string) Writer {
	switch format {
	case config.FormatMarkdown:
		return NewMarkdownWriter(output)
	case config.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version))
	default:
		return NewSimpleWriter(output)
	}
}
