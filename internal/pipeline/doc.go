// Package pipeline runs the survey analysis as an ordered list of steps.
//
// Each step reads the loaded dataset and fills in one section of a
// model.SurveyReport: load, column classification, demographics, quote
// sampling and sentiment. Steps share the dataset through a Source that the
// load step populates. The pipeline stops at the first failing step by
// default so that a report never shows a section computed from a dataset
// that did not load.
package pipeline
