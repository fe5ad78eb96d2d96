package config

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The column names and thresholds match the round 3 BC AI survey export.
const (
	// DefaultDataFile is the dataset read when no path is given. It is
	// resolved relative to the working directory.
	DefaultDataFile = "Hackathon round 3 with demos[48].csv"

	// DefaultDelimiter separates the fields of the dataset.
	DefaultDelimiter = ","

	// DefaultAgeColumn holds the broad age bracket of each respondent.
	DefaultAgeColumn = "AgeRollup_Broad"

	// DefaultLocationColumn holds the respondent's region within BC.
	DefaultLocationColumn = "Q1_Location_in_BC"

	// DefaultExperienceColumn holds the respondent's prior experience with AI.
	DefaultExperienceColumn = "Q1_Experience_with_AI"

	// DefaultQuoteColumn is the open-ended question sampled for quotes.
	DefaultQuoteColumn = "Q17_Advice_BC_Leaders_text_OE"

	// DefaultOpenEndedMarker identifies free-text answer columns.
	DefaultOpenEndedMarker = "_OE"

	// DefaultSentimentExclude removes derived sentiment columns from the
	// open-ended category.
	DefaultSentimentExclude = "sentiment"

	// DefaultSentimentMarker identifies sentiment-score columns.
	DefaultSentimentMarker = "sentiment_percentage"

	// DefaultSentimentQuestion selects which sentiment column is summarized.
	DefaultSentimentQuestion = "Q17"

	// DefaultQuoteLimit is how many quotes are previewed.
	DefaultQuoteLimit = 3

	// DefaultQuoteMinLength is the trimmed length an answer must exceed
	// to be quoted. Shorter answers are usually "no" or "n/a".
	DefaultQuoteMinLength = 10

	// DefaultQuotePreviewLength is the number of characters kept per quote
	// before the ellipsis.
	DefaultQuotePreviewLength = 80

	// DefaultLocationTopN is how many locations the geographic section lists.
	DefaultLocationTopN = 5

	// DefaultNegativeThreshold is the score below which a response counts
	// as very negative.
	DefaultNegativeThreshold = 0.1

	// DefaultPositiveThreshold is the score above which a response counts
	// as very positive.
	DefaultPositiveThreshold = 0.9

	// DefaultTargetResponses is the response goal of the survey.
	DefaultTargetResponses = 1001

	// AppName is the application name used for XDG directory paths.
	AppName = "surveyscope"
)

// Output formats accepted by the --format flag.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Columns names the survey fields each report section reads.
type Columns struct {
	// Age is the age bracket column.
	Age string

	// Location is the geographic column.
	Location string

	// Experience is the AI experience column.
	Experience string

	// Quotes is the open-ended column sampled for quotes.
	Quotes string

	// OpenEndedMarker is the substring that marks a free-text column.
	OpenEndedMarker string

	// SentimentExclude is the substring that disqualifies a column from
	// the open-ended category.
	SentimentExclude string

	// SentimentMarker is the substring that marks a sentiment-score column.
	SentimentMarker string

	// SentimentQuestion is the question identifier whose sentiment column
	// is summarized. The first sentiment column containing it wins.
	SentimentQuestion string
}

// Demographics returns the demographic column names in report order.
func (c Columns) Demographics() []string {
	return []string{c.Age, c.Location, c.Experience}
}

// Config holds all configuration options for one surveyscope run.
// It is populated from defaults, the config file and CLI flags, then
// passed down explicitly rather than kept in global state.
type Config struct {
	// DataFile is the path of the CSV dataset.
	DataFile string

	// ConfigFilePath is the YAML configuration file. If empty, the tool
	// searches the working directory and then the XDG config directory.
	ConfigFilePath string

	// Delimiter is the single-character field separator of the dataset.
	Delimiter string

	// MissingValues replaces the tokens that mark a missing cell. Nil
	// keeps the built-in list; empty cells are always missing.
	MissingValues []string

	// Format selects the report renderer: text, markdown or json.
	Format string

	// Verbose enables debug logging on stderr.
	Verbose bool

	// Columns names the survey fields used by each section.
	Columns Columns

	// QuoteLimit is the number of quotes previewed.
	QuoteLimit int

	// QuoteMinLength is the trimmed length an answer must exceed to be quoted.
	QuoteMinLength int

	// QuotePreviewLength is the number of characters kept per quote.
	QuotePreviewLength int

	// ClampRemaining floors the "more responses" count at zero. When false
	// the count is non-missing answers minus QuoteLimit and may be negative.
	ClampRemaining bool

	// LocationTopN limits the geographic distribution.
	LocationTopN int

	// NegativeThreshold is the exclusive upper bound of very negative scores.
	NegativeThreshold float64

	// PositiveThreshold is the exclusive lower bound of very positive scores.
	PositiveThreshold float64

	// TargetResponses is the response goal shown in the overview.
	TargetResponses int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DataFile:  DefaultDataFile,
		Delimiter: DefaultDelimiter,
		Format:    FormatText,
		Columns: Columns{
			Age:               DefaultAgeColumn,
			Location:          DefaultLocationColumn,
			Experience:        DefaultExperienceColumn,
			Quotes:            DefaultQuoteColumn,
			OpenEndedMarker:   DefaultOpenEndedMarker,
			SentimentExclude:  DefaultSentimentExclude,
			SentimentMarker:   DefaultSentimentMarker,
			SentimentQuestion: DefaultSentimentQuestion,
		},
		QuoteLimit:         DefaultQuoteLimit,
		QuoteMinLength:     DefaultQuoteMinLength,
		QuotePreviewLength: DefaultQuotePreviewLength,
		LocationTopN:       DefaultLocationTopN,
		NegativeThreshold:  DefaultNegativeThreshold,
		PositiveThreshold:  DefaultPositiveThreshold,
		TargetResponses:    DefaultTargetResponses,
	}
}

// XDGConfigDir returns the XDG config directory for surveyscope.
// On Linux: ~/.config/surveyscope
// On macOS: ~/Library/Application Support/surveyscope
// On Windows: %APPDATA%\surveyscope
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return ErrNoDataFile
	}

	if !validDelimiter(c.Delimiter) {
		return ErrInvalidDelimiter
	}

	switch c.Format {
	case FormatText, FormatMarkdown, FormatJSON:
	default:
		return ErrInvalidFormat
	}

	if c.QuoteLimit < 0 {
		return ErrInvalidQuoteLimit
	}

	if c.QuoteMinLength < 0 {
		return ErrInvalidQuoteMinLength
	}

	if c.QuotePreviewLength <= 0 {
		return ErrInvalidPreviewLength
	}

	if c.LocationTopN <= 0 {
		return ErrInvalidTopN
	}

	if c.NegativeThreshold > c.PositiveThreshold {
		return ErrInvalidThresholds
	}

	if c.TargetResponses <= 0 {
		return ErrInvalidTargetResponses
	}

	return nil
}

// DelimiterRune returns Delimiter as a rune. It is only meaningful after
// Validate succeeded.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// validDelimiter reports whether d is one character that CSV can use as
// a separator.
func validDelimiter(d string) bool {
	if utf8.RuneCountInString(d) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError
}
