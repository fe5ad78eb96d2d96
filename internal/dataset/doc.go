// Package dataset loads survey exports into an in-memory table and answers
// the column-level questions the report needs: which columns exist, how
// often each category occurs, which answers are present, and which cells
// read as numbers.
//
// Parsing and missing-value handling are delegated to gota's dataframe,
// configured to keep every column as text. Each question decides for
// itself how to interpret the text, so a stray word in a numeric column
// never fails the whole load.
//
// A Dataset is immutable after Load and safe to share.
package dataset
