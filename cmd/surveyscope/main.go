// Package main provides the entry point for the surveyscope CLI.
//
// surveyscope prints a guided first look at a BC AI survey export: its
// size, column categories, demographics, sample quotes and sentiment.
//
// Usage:
//
//	surveyscope
//	surveyscope --file other.csv --format markdown
//	surveyscope query "SELECT COUNT(*) FROM responses"
//	surveyscope crosstab --by Q1_Experience_with_AI
//
// See --help for all available options.
package main

// main is the entry point for surveyscope.
func main() {
	Execute()
}
