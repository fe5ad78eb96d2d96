// Package report renders a model.SurveyReport.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the console summary, line for line
//   - MarkdownWriter: tables and a mermaid pie chart for sharing
//   - JSONWriter: structured JSON for scripts and notebooks
//
// Writers only render sections whose analysis step completed. When the
// report carries an error, the sections that finished are written first
// and the error follows, so a failing run still shows what it learned.
package report
