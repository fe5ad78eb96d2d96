package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vanai-hackathon/surveyscope/internal/config"
	"github.com/vanai-hackathon/surveyscope/internal/dataset"
	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// ErrNotLoaded is returned by analysis steps that run before the load step
// has populated the Source.
var ErrNotLoaded = errors.New("dataset not loaded")

// Source hands the loaded dataset from LoadStep to the analysis steps.
type Source struct {
	ds *dataset.Dataset
}

// NewSource returns an empty Source. Use NewSourceFrom in tests that
// already hold a dataset.
func NewSource() *Source {
	return &Source{}
}

// NewSourceFrom returns a Source that already holds ds.
func NewSourceFrom(ds *dataset.Dataset) *Source {
	return &Source{ds: ds}
}

// Dataset returns the loaded dataset or ErrNotLoaded.
func (s *Source) Dataset() (*dataset.Dataset, error) {
	if s == nil || s.ds == nil {
		return nil, ErrNotLoaded
	}
	return s.ds, nil
}

// LoadStep parses the data file into the Source and records its shape.
type LoadStep struct {
	path   string
	source *Source
	target int
	opts   []dataset.LoadOption
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadOptions passes parser options through to dataset.Load.
func WithLoadOptions(opts ...dataset.LoadOption) LoadStepOption {
	return func(s *LoadStep) {
		s.opts = append(s.opts, opts...)
	}
}

// WithTargetResponses sets the response goal recorded in the report.
func WithTargetResponses(n int) LoadStepOption {
	return func(s *LoadStep) {
		s.target = n
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a step that loads path into source.
func NewLoadStep(path string, source *Source, opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		path:   path,
		source: source,
		target: config.DefaultTargetResponses,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return model.StepLoad
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, report *model.SurveyReport) error {
	ds, err := dataset.Load(s.path, s.opts...)
	if err != nil {
		return err
	}

	s.source.ds = ds
	report.Rows = ds.Rows()
	report.Columns = ds.Columns()
	report.TargetResponses = s.target

	s.logger.Debug("dataset loaded",
		"file", s.path,
		"rows", report.Rows,
		"columns", report.Columns,
	)
	return nil
}

// ClassifyStep groups column names by naming convention.
type ClassifyStep struct {
	source  *Source
	columns config.Columns
}

// NewClassifyStep creates a column classification step.
func NewClassifyStep(source *Source, columns config.Columns) *ClassifyStep {
	return &ClassifyStep{source: source, columns: columns}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return model.StepClassify
}

// Do executes the classification step. The demographic list is the
// configured one, whether or not the columns exist.
func (s *ClassifyStep) Do(_ context.Context, report *model.SurveyReport) error {
	ds, err := s.source.Dataset()
	if err != nil {
		return err
	}

	report.Categories = &model.ColumnCategories{
		OpenEnded:   ds.ColumnsContaining(s.columns.OpenEndedMarker, s.columns.SentimentExclude),
		Sentiment:   ds.ColumnsContaining(s.columns.SentimentMarker, ""),
		Demographic: s.columns.Demographics(),
	}
	return nil
}

// DemographicsStep computes the age, location and AI experience
// distributions. Columns that are absent leave their distribution nil.
type DemographicsStep struct {
	source  *Source
	columns config.Columns
	topN    int
	logger  *slog.Logger
}

// NewDemographicsStep creates a demographics step. Location is limited to
// the topN most frequent values.
func NewDemographicsStep(source *Source, columns config.Columns, topN int, logger *slog.Logger) *DemographicsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DemographicsStep{source: source, columns: columns, topN: topN, logger: logger}
}

// Name returns the step name.
func (s *DemographicsStep) Name() string {
	return model.StepDemographics
}

// Do executes the demographics step.
func (s *DemographicsStep) Do(_ context.Context, report *model.SurveyReport) error {
	ds, err := s.source.Dataset()
	if err != nil {
		return err
	}

	if report.Age, err = s.distribution(ds, s.columns.Age, 0); err != nil {
		return err
	}
	if report.Location, err = s.distribution(ds, s.columns.Location, s.topN); err != nil {
		return err
	}
	if report.Experience, err = s.distribution(ds, s.columns.Experience, 0); err != nil {
		return err
	}
	return nil
}

func (s *DemographicsStep) distribution(ds *dataset.Dataset, column string, limit int) (*model.Distribution, error) {
	if !ds.HasColumn(column) {
		s.logger.Debug("column absent, skipping", "column", column)
		return nil, nil
	}
	counts, err := ds.ValueCounts(column)
	if err != nil {
		return nil, err
	}
	return model.NewDistribution(column, counts, ds.Rows(), limit), nil
}

// QuoteStep samples short previews from an open-ended column.
type QuoteStep struct {
	source        *Source
	column        string
	limit         int
	minLength     int
	previewLength int
	clamp         bool
	logger        *slog.Logger
}

// QuoteStepOption configures a QuoteStep.
type QuoteStepOption func(*QuoteStep)

// WithQuoteLimit sets how many quotes are sampled.
func WithQuoteLimit(n int) QuoteStepOption {
	return func(s *QuoteStep) {
		s.limit = n
	}
}

// WithQuoteMinLength sets the trimmed length an answer must exceed.
func WithQuoteMinLength(n int) QuoteStepOption {
	return func(s *QuoteStep) {
		s.minLength = n
	}
}

// WithQuotePreviewLength sets the number of characters kept per quote.
func WithQuotePreviewLength(n int) QuoteStepOption {
	return func(s *QuoteStep) {
		s.previewLength = n
	}
}

// WithClampRemaining makes the remaining count stop at zero.
func WithClampRemaining(clamp bool) QuoteStepOption {
	return func(s *QuoteStep) {
		s.clamp = clamp
	}
}

// WithQuoteLogger sets a custom logger for the quote step.
func WithQuoteLogger(logger *slog.Logger) QuoteStepOption {
	return func(s *QuoteStep) {
		s.logger = logger
	}
}

// NewQuoteStep creates a quote sampling step for column.
func NewQuoteStep(source *Source, column string, opts ...QuoteStepOption) *QuoteStep {
	s := &QuoteStep{
		source:        source,
		column:        column,
		limit:         config.DefaultQuoteLimit,
		minLength:     config.DefaultQuoteMinLength,
		previewLength: config.DefaultQuotePreviewLength,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *QuoteStep) Name() string {
	return model.StepQuotes
}

// Do executes the quote sampling step.
//
// Answers are taken in row order. An answer qualifies when its trimmed
// length is greater than minLength characters; the first limit qualifying
// answers are kept. Remaining is the non-missing count minus limit, and is
// negative for columns with fewer answers than limit unless clamping is on.
func (s *QuoteStep) Do(_ context.Context, report *model.SurveyReport) error {
	ds, err := s.source.Dataset()
	if err != nil {
		return err
	}
	if !ds.HasColumn(s.column) {
		s.logger.Debug("column absent, skipping", "column", s.column)
		return nil
	}

	answers, err := ds.NonMissing(s.column)
	if err != nil {
		return err
	}

	sample := &model.QuoteSample{
		Column:     s.column,
		Quotes:     make([]model.Quote, 0, s.limit),
		NonMissing: len(answers),
		Remaining:  len(answers) - s.limit,
	}
	if s.clamp && sample.Remaining < 0 {
		sample.Remaining = 0
	}

	for _, answer := range answers {
		if len(sample.Quotes) >= s.limit {
			break
		}
		if utf8.RuneCountInString(strings.TrimSpace(answer)) <= s.minLength {
			continue
		}
		text, truncated := Preview(answer, s.previewLength)
		sample.Quotes = append(sample.Quotes, model.Quote{
			Number:    len(sample.Quotes) + 1,
			Text:      text,
			Truncated: truncated,
		})
		s.logger.Debug("quote sampled", "column", s.column, "quote", answer)
	}

	report.Quotes = sample
	return nil
}

// Preview keeps the first n characters of s and appends "..." when
// anything was cut. Characters are counted as runes.
func Preview(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:n]) + "...", true
}

// SentimentStep summarizes the sentiment column for one question.
type SentimentStep struct {
	source   *Source
	columns  config.Columns
	negative float64
	positive float64
	logger   *slog.Logger
}

// NewSentimentStep creates a sentiment step. Values strictly below
// negative and strictly above positive are counted as extremes.
func NewSentimentStep(source *Source, columns config.Columns, negative, positive float64, logger *slog.Logger) *SentimentStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentimentStep{
		source:   source,
		columns:  columns,
		negative: negative,
		positive: positive,
		logger:   logger,
	}
}

// Name returns the step name.
func (s *SentimentStep) Name() string {
	return model.StepSentiment
}

// Do executes the sentiment step. The first sentiment column whose name
// contains the question identifier is used; without one the section is
// left nil.
func (s *SentimentStep) Do(_ context.Context, report *model.SurveyReport) error {
	ds, err := s.source.Dataset()
	if err != nil {
		return err
	}

	column, ok := SentimentColumn(ds, s.columns)
	if !ok {
		s.logger.Debug("no sentiment column for question", "question", s.columns.SentimentQuestion)
		return nil
	}

	scores, err := ds.Numeric(column)
	if err != nil {
		return fmt.Errorf("failed to read sentiment scores: %w", err)
	}

	summary := &model.SentimentSummary{
		Column:            column,
		Question:          s.columns.SentimentQuestion,
		Count:             len(scores),
		NegativeThreshold: s.negative,
		PositiveThreshold: s.positive,
	}

	var sum float64
	for _, v := range scores {
		sum += v
		if v < s.negative {
			summary.VeryNegative++
		}
		if v > s.positive {
			summary.VeryPositive++
		}
	}
	if summary.Count > 0 {
		summary.Mean = sum / float64(summary.Count)
	}

	report.Sentiment = summary
	return nil
}

// SentimentColumn returns the first sentiment column whose name contains
// the configured question identifier.
func SentimentColumn(ds *dataset.Dataset, columns config.Columns) (string, bool) {
	for _, c := range ds.ColumnsContaining(columns.SentimentMarker, "") {
		if strings.Contains(c, columns.SentimentQuestion) {
			return c, true
		}
	}
	return "", false
}

// DatasetOptions returns the parser options for the dataset described by
// cfg: its delimiter and, when configured, its missing-value tokens.
func DatasetOptions(cfg *config.Config) []dataset.LoadOption {
	opts := []dataset.LoadOption{dataset.WithDelimiter(cfg.DelimiterRune())}
	if cfg.MissingValues != nil {
		opts = append(opts, dataset.WithMissingValues(cfg.MissingValues))
	}
	return opts
}

// DefaultPipeline creates the explorer pipeline for cfg: load, classify,
// demographics, quotes and sentiment, in that order.
func DefaultPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	source := NewSource()
	p := New(WithLogger(logger))
	p.AddSteps(
		NewLoadStep(cfg.DataFile, source,
			WithLoadOptions(DatasetOptions(cfg)...),
			WithTargetResponses(cfg.TargetResponses),
			WithLoadLogger(logger),
		),
		NewClassifyStep(source, cfg.Columns),
		NewDemographicsStep(source, cfg.Columns, cfg.LocationTopN, logger),
		NewQuoteStep(source, cfg.Columns.Quotes,
			WithQuoteLimit(cfg.QuoteLimit),
			WithQuoteMinLength(cfg.QuoteMinLength),
			WithQuotePreviewLength(cfg.QuotePreviewLength),
			WithClampRemaining(cfg.ClampRemaining),
			WithQuoteLogger(logger),
		),
		NewSentimentStep(source, cfg.Columns, cfg.NegativeThreshold, cfg.PositiveThreshold, logger),
	)
	return p
}
