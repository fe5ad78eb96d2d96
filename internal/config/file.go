package config

// File represents the structure of the .surveyscope configuration file.
// Every field is optional; absent keys leave the defaults untouched.
type File struct {
	// DataFile overrides the dataset path.
	DataFile string `yaml:"dataFile,omitempty"`

	// Delimiter overrides the field separator, e.g. ";" or "\t".
	Delimiter string `yaml:"delimiter,omitempty"`

	// MissingValues replaces the tokens that mark a missing cell.
	MissingValues []string `yaml:"missingValues,omitempty"`

	// Columns overrides survey column names and naming markers.
	Columns ColumnsFile `yaml:"columns,omitempty"`

	// Quotes configures the quote sampling section.
	Quotes QuotesFile `yaml:"quotes,omitempty"`

	// Sentiment configures the sentiment thresholds.
	Sentiment SentimentFile `yaml:"sentiment,omitempty"`

	// LocationTopN overrides how many locations are listed.
	LocationTopN *int `yaml:"locationTopN,omitempty"`

	// TargetResponses overrides the response goal.
	TargetResponses *int `yaml:"targetResponses,omitempty"`
}

// ColumnsFile is the columns section of the configuration file.
type ColumnsFile struct {
	Age               string `yaml:"age,omitempty"`
	Location          string `yaml:"location,omitempty"`
	Experience        string `yaml:"experience,omitempty"`
	Quotes            string `yaml:"quotes,omitempty"`
	OpenEndedMarker   string `yaml:"openEndedMarker,omitempty"`
	SentimentExclude  string `yaml:"sentimentExclude,omitempty"`
	SentimentMarker   string `yaml:"sentimentMarker,omitempty"`
	SentimentQuestion string `yaml:"sentimentQuestion,omitempty"`
}

// QuotesFile is the quotes section of the configuration file.
// Fields are pointers so that an explicit 0 or false can be told apart
// from an absent key.
type QuotesFile struct {
	Limit          *int  `yaml:"limit,omitempty"`
	MinLength      *int  `yaml:"minLength,omitempty"`
	PreviewLength  *int  `yaml:"previewLength,omitempty"`
	ClampRemaining *bool `yaml:"clampRemaining,omitempty"`
}

// SentimentFile is the sentiment section of the configuration file.
type SentimentFile struct {
	// NegativeBelow and PositiveAbove are pointers because 0 is a valid threshold.
	NegativeBelow *float64 `yaml:"negativeBelow,omitempty"`
	PositiveAbove *float64 `yaml:"positiveAbove,omitempty"`
}

// Apply merges the file settings into cfg, overriding only the values
// the file sets. Out-of-range values are left for Config.Validate.
func (f *File) Apply(cfg *Config) {
	mergeString(&cfg.DataFile, f.DataFile)
	mergeString(&cfg.Delimiter, f.Delimiter)
	if f.MissingValues != nil {
		cfg.MissingValues = f.MissingValues
	}

	mergeString(&cfg.Columns.Age, f.Columns.Age)
	mergeString(&cfg.Columns.Location, f.Columns.Location)
	mergeString(&cfg.Columns.Experience, f.Columns.Experience)
	mergeString(&cfg.Columns.Quotes, f.Columns.Quotes)
	mergeString(&cfg.Columns.OpenEndedMarker, f.Columns.OpenEndedMarker)
	mergeString(&cfg.Columns.SentimentExclude, f.Columns.SentimentExclude)
	mergeString(&cfg.Columns.SentimentMarker, f.Columns.SentimentMarker)
	mergeString(&cfg.Columns.SentimentQuestion, f.Columns.SentimentQuestion)

	mergeInt(&cfg.QuoteLimit, f.Quotes.Limit)
	mergeInt(&cfg.QuoteMinLength, f.Quotes.MinLength)
	mergeInt(&cfg.QuotePreviewLength, f.Quotes.PreviewLength)
	if f.Quotes.ClampRemaining != nil {
		cfg.ClampRemaining = *f.Quotes.ClampRemaining
	}

	if f.Sentiment.NegativeBelow != nil {
		cfg.NegativeThreshold = *f.Sentiment.NegativeBelow
	}
	if f.Sentiment.PositiveAbove != nil {
		cfg.PositiveThreshold = *f.Sentiment.PositiveAbove
	}

	mergeInt(&cfg.LocationTopN, f.LocationTopN)
	mergeInt(&cfg.TargetResponses, f.TargetResponses)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
