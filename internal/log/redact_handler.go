package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// contentKeys contains attribute keys that always carry respondent text.
var contentKeys = map[string]bool{
	"response":  true,
	"responses": true,
	"quote":     true,
	"quotes":    true,
	"answer":    true,
	"answers":   true,
	"comment":   true,
	"text":      true,
	"value":     true,
	"cell":      true,
	"preview":   true,
}

// contentKeywords are substrings that mark a key as respondent content.
var contentKeywords = []string{"answer", "quote", "response", "comment"}

// openEndedSuffix marks survey columns that hold free text. Attributes
// keyed by such a column name are masked.
const openEndedSuffix = "_oe"

// personalPatterns contains regex patterns that indicate personal data.
// Values matching these patterns are masked regardless of key name.
var personalPatterns = []*regexp.Regexp{
	// E-mail addresses
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),

	// North American phone numbers
	regexp.MustCompile(`\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}\b`),
}

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// RedactingHandler wraps an slog.Handler and masks respondent content in
// attribute values before passing records on. It works with any underlying
// handler (text, JSON, etc.).
type RedactingHandler struct {
	// handler is the underlying slog handler that receives redacted records.
	handler slog.Handler
}

// NewRedactingHandler creates a RedactingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are redacted before being added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redactedAttrs[i] = h.redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redactedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr masks a single attribute, recursing into groups.
// LogValuer values are resolved first, so what they render is checked.
func (h *RedactingHandler) redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redactedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redactedAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redactedAttrs...)}
	}

	if isContentKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if isPersonalValue(a.Value.String()) {
			return slog.String(a.Key, MaskValue)
		}
	case slog.KindAny:
		// errors, stringers and slices are rendered the way the handler
		// would print them
		if isPersonalValue(fmt.Sprint(a.Value.Any())) {
			return slog.String(a.Key, MaskValue)
		}
	}

	return a
}

// isContentKey reports whether key names respondent content.
// Column names are matched case-insensitively, so "Q17_Advice_text_OE" is
// treated like a quote.
func isContentKey(key string) bool {
	keyLower := strings.ToLower(key)
	if contentKeys[keyLower] {
		return true
	}
	if strings.HasSuffix(keyLower, openEndedSuffix) {
		return true
	}
	for _, keyword := range contentKeywords {
		if strings.Contains(keyLower, keyword) {
			return true
		}
	}
	return false
}

// isPersonalValue checks if a value contains personal data.
func isPersonalValue(value string) bool {
	for _, pattern := range personalPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewLogger creates a text slog.Logger that redacts respondent content.
// Verbose selects Debug level; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON slog.Logger that redacts respondent content.
// It is used when the report itself is JSON, so that log lines on stderr
// can be parsed by the same tooling.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
