package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Callers can match them with errors.Is.
var (
	// ErrNoDataFile is returned when the dataset path is empty.
	ErrNoDataFile = errors.New("no data file specified: use --file or set dataFile in the config file")

	// ErrInvalidDelimiter is returned when the delimiter is not a single usable character.
	ErrInvalidDelimiter = errors.New("invalid delimiter: must be a single character other than a quote or line break")

	// ErrInvalidFormat is returned for an unknown --format value.
	ErrInvalidFormat = errors.New("invalid format: must be one of text, markdown, json")

	// ErrInvalidQuoteLimit is returned when the quote limit is negative.
	ErrInvalidQuoteLimit = errors.New("invalid quote limit: must be non-negative")

	// ErrInvalidQuoteMinLength is returned when the minimum quote length is negative.
	ErrInvalidQuoteMinLength = errors.New("invalid quote minimum length: must be non-negative")

	// ErrInvalidPreviewLength is returned when the preview length is not positive.
	ErrInvalidPreviewLength = errors.New("invalid quote preview length: must be positive")

	// ErrInvalidTopN is returned when the location limit is not positive.
	ErrInvalidTopN = errors.New("invalid location limit: must be positive")

	// ErrInvalidThresholds is returned when the negative threshold is above
	// the positive one.
	ErrInvalidThresholds = errors.New("invalid sentiment thresholds: negative threshold must not exceed positive threshold")

	// ErrInvalidTargetResponses is returned when the response goal is not positive.
	ErrInvalidTargetResponses = errors.New("invalid target responses: must be positive")
)
