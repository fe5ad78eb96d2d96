package report

import (
	"encoding/json"
	"io"

	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for scripts and notebooks that post-process the
// statistics.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is written alongside the report.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the surveyscope version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps a report with output metadata.
type JSONReport struct {
	// Version is the surveyscope version that generated this report.
	Version string `json:"version,omitempty"`

	// Report is the exploration result.
	Report *model.SurveyReport `json:"report"`
}

// missingReport is written when the data file does not exist.
type missingReport struct {
	Version  string `json:"version,omitempty"`
	DataFile string `json:"data_file"`
	Error    string `json:"error"`
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.SurveyReport) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Report: report})
}

// WriteMissing outputs a JSON object describing the missing data file.
func (w *JSONWriter) WriteMissing(path string) (int, error) {
	return w.writeJSON(&missingReport{
		Version:  w.version,
		DataFile: path,
		Error:    "data file not found",
	})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
