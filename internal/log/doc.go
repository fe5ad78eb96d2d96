// Package log provides logging for surveyscope on top of the standard slog
// package, with automatic redaction of respondent answers.
//
// Survey exports hold free-text answers written by real people. Debug logs
// that mention a sampled quote or a cell value must not copy that text to
// a terminal or CI log. The RedactingHandler masks:
//   - attributes whose key names respondent content (response, quote,
//     answer, comment, text, or any key ending in _OE)
//   - string values that look like e-mail addresses or phone numbers,
//     whatever their key
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("quote sampled", "quote", text) // quote=***REDACTED***
//	slog.SetDefault(logger)
package log
