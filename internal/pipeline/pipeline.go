package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vanai-hackathon/surveyscope/internal/model"
)

// ErrStepPanicked is returned by Execute when a step panics.
var ErrStepPanicked = errors.New("step panicked")

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// report from previous steps.
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the report to modify.
	// A step whose input column is absent leaves its section nil and
	// returns nil; an error means the analysis cannot continue.
	Do(ctx context.Context, report *model.SurveyReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step.
//
// The first failing step stops the pipeline. Its error is recorded in
// report.Error and report.ErrorMessage, the step is not added to
// report.CompletedSteps, and the error is returned. A panicking step
// is reported as an ErrStepPanicked error.
func (p *Pipeline) Execute(ctx context.Context, report *model.SurveyReport) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			p.record(report, ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"file", report.DataFile,
		)

		if err := runStep(ctx, step, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"file", report.DataFile,
				"error", err,
			)
			p.record(report, err)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"file", report.DataFile,
		)
		report.CompletedSteps = append(report.CompletedSteps, step.Name())
	}

	return nil
}

// runStep calls step.Do and turns a panic into an error.
func runStep(ctx context.Context, step Step, report *model.SurveyReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrStepPanicked, step.Name(), r)
		}
	}()
	return step.Do(ctx, report)
}

// record stores err in the report unless an error is already recorded.
func (p *Pipeline) record(report *model.SurveyReport, err error) {
	if report.Error != nil {
		return
	}
	report.Error = err
	report.ErrorMessage = err.Error()
}
