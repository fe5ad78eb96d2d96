// Package model defines the data structures shared across surveyscope.
//
// This package contains the following main types:
//   - SurveyReport: The result of one exploration run over a dataset
//   - ColumnCategories: Column names grouped by naming convention
//   - Distribution and Frequency: Category counts for a demographic column
//   - QuoteSample: Previews of open-ended answers
//   - SentimentSummary: Aggregates over a sentiment-score column
//
// The dataset loader, the analysis steps and the report writers all use
// these types, so they live in their own package to avoid import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
