package model

import "time"

// Names of the analysis steps. Writers use them to decide which sections
// of a partially completed report can be rendered.
const (
	StepLoad         = "load"
	StepClassify     = "classify"
	StepDemographics = "demographics"
	StepQuotes       = "quotes"
	StepSentiment    = "sentiment"
)

// SurveyReport holds everything one exploration run learns about a dataset.
// Analysis steps fill it in order; a step that fails leaves the sections
// of later steps empty and records the error.
type SurveyReport struct {
	// DataFile is the path of the dataset as given by the user.
	DataFile string `json:"data_file"`

	// GeneratedAt is when the exploration started.
	GeneratedAt time.Time `json:"generated_at"`

	// === Dataset Overview ===

	// Rows is the number of respondents (data rows).
	Rows int `json:"rows"`

	// Columns is the number of survey fields.
	Columns int `json:"columns"`

	// TargetResponses is the response goal the overview compares against.
	TargetResponses int `json:"target_responses"`

	// === Sections ===

	// Categories groups the column names by naming convention.
	Categories *ColumnCategories `json:"categories,omitempty"`

	// Age is the distribution of the age bracket column, nil when absent.
	Age *Distribution `json:"age,omitempty"`

	// Location is the distribution of the location column, nil when absent.
	Location *Distribution `json:"location,omitempty"`

	// Experience is the distribution of the AI experience column, nil when absent.
	Experience *Distribution `json:"experience,omitempty"`

	// Quotes holds previews of open-ended answers, nil when the column is absent.
	Quotes *QuoteSample `json:"quotes,omitempty"`

	// Sentiment summarizes the selected sentiment column, nil when none matched.
	Sentiment *SentimentSummary `json:"sentiment,omitempty"`

	// === Execution ===

	// CompletedSteps lists the analysis steps that finished, in order.
	CompletedSteps []string `json:"completed_steps"`

	// Error is the failure that stopped the analysis, if any.
	Error error `json:"-"`

	// ErrorMessage is Error rendered as text for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewSurveyReport creates an empty report for the given data file.
func NewSurveyReport(dataFile string) *SurveyReport {
	return &SurveyReport{
		DataFile:       dataFile,
		GeneratedAt:    time.Now(),
		CompletedSteps: make([]string, 0),
	}
}

// Completed reports whether the named step finished successfully.
func (r *SurveyReport) Completed(step string) bool {
	for _, s := range r.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// Failed reports whether the analysis stopped with an error.
func (r *SurveyReport) Failed() bool {
	return r.Error != nil
}

// ColumnCategories groups dataset columns by naming convention.
type ColumnCategories struct {
	// OpenEnded are free-text answer columns.
	OpenEnded []string `json:"open_ended"`

	// Sentiment are sentiment-score columns.
	Sentiment []string `json:"sentiment"`

	// Demographic is the fixed list of demographic fields. It is not
	// filtered by presence in the dataset.
	Demographic []string `json:"demographic"`
}

// QuoteSample holds short previews of open-ended answers.
type QuoteSample struct {
	// Column is the open-ended column the quotes came from.
	Column string `json:"column"`

	// Quotes are the previews in dataset order.
	Quotes []Quote `json:"quotes"`

	// NonMissing is the number of answers in the column that are not missing.
	NonMissing int `json:"non_missing"`

	// Remaining is the number reported as "more responses". It can be
	// negative when the column holds fewer answers than the sample size
	// and clamping is disabled.
	Remaining int `json:"remaining"`
}

// Quote is one previewed answer.
type Quote struct {
	// Number is the 1-based position in the printed list.
	Number int `json:"number"`

	// Text is the preview, already truncated.
	Text string `json:"text"`

	// Truncated reports whether Text was shortened.
	Truncated bool `json:"truncated"`
}

// SentimentSummary aggregates the numeric values of a sentiment column.
type SentimentSummary struct {
	// Column is the sentiment column that was summarized.
	Column string `json:"column"`

	// Question is the question identifier used to select Column.
	Question string `json:"question"`

	// Count is the number of values that could be read as numbers.
	Count int `json:"count"`

	// Mean is the average of the numeric values. Only meaningful when Count > 0.
	Mean float64 `json:"mean"`

	// NegativeThreshold is the exclusive upper bound for VeryNegative.
	NegativeThreshold float64 `json:"negative_threshold"`

	// PositiveThreshold is the exclusive lower bound for VeryPositive.
	PositiveThreshold float64 `json:"positive_threshold"`

	// VeryNegative counts values strictly below NegativeThreshold.
	VeryNegative int `json:"very_negative"`

	// VeryPositive counts values strictly above PositiveThreshold.
	VeryPositive int `json:"very_positive"`
}

// HasMean reports whether at least one numeric value contributed to Mean.
func (s *SentimentSummary) HasMean() bool {
	return s.Count > 0
}
