// Package runner executes test sequences and records their outcomes into a
// UUT test report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rom8726/uutreport"
)

// ErrSkip marks a test case as intentionally not run. Return it from a
// TestFunc to record the step as SKIPPED without failing the report.
var ErrSkip = errors.New("test case skipped")

// TestFunc is the body of one test case. It receives the sequence-call step
// created for the case and records its measurements there. A nil return
// leaves the step PASSED (unless a failing measurement already forced it),
// ErrSkip marks it SKIPPED, any other error marks it FAILED, and a panic
// marks it ERROR.
type TestFunc func(ctx context.Context, step *uutreport.Step) error

// Runner drives the cases of a sequence against a report
type Runner struct {
	logger *zap.Logger
	stats  *Stats
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger used for per-case progress
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner. Without options it runs silently.
func New(opts ...Option) *Runner {
	runner := &Runner{
		logger: zap.NewNop(),
		stats:  NewStats(),
	}
	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Stats returns the collector accumulating case outcomes across runs
func (r *Runner) Stats() *Stats {
	return r.stats
}

// Run executes every case of the sequence in order, appending one
// sequence-call step per case under the report root. Cases keep running
// after a failure; a cancelled context terminates the remaining cases and
// marks the report TERMINATED. The total execution time is recorded on the
// report's UUT header.
func (r *Runner) Run(ctx context.Context, report *uutreport.Report, seq *Sequence) error {
	runStart := time.Now()

	for _, tc := range seq.cases {
		step, err := report.AddTestSequence(tc.name, tc.path, tc.version)
		if err != nil {
			return fmt.Errorf("add sequence for case %q: %w", tc.name, err)
		}

		if ctx.Err() != nil {
			step.SetStatus(uutreport.StepTerminated)
			r.stats.record(uutreport.StepTerminated, 0)
			continue
		}

		r.logger.Info("running test case", zap.String("case", tc.name))

		caseStart := time.Now()
		status := r.runCase(ctx, step, tc)
		elapsed := time.Since(caseStart)

		step.SetTotalTime(elapsed.Seconds())
		// a passing return must not overwrite a status forced by failing
		// measurements
		if status != uutreport.StepPassed {
			step.SetStatus(status)
		}
		r.stats.record(step.Status, elapsed)

		r.logger.Info("test case finished",
			zap.String("case", tc.name),
			zap.String("status", string(step.Status)),
			zap.Duration("elapsed", elapsed),
		)
	}

	total := time.Since(runStart).Seconds()
	report.UUT.ExecTime = &total

	if ctx.Err() != nil {
		if err := report.SetResult(uutreport.UUTTerminated); err != nil {
			return err
		}

		return ctx.Err()
	}

	return nil
}

// runCase maps the outcome of one test function onto a step status,
// catching panics as ERROR.
func (r *Runner) runCase(ctx context.Context, step *uutreport.Step, tc testCase) (status uutreport.StepStatus) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("test case panicked",
				zap.String("case", tc.name),
				zap.Any("panic", rec),
			)
			step.SetError(1, fmt.Sprintf("panic: %v", rec))
			status = uutreport.StepError
		}
	}()

	err := tc.fn(ctx, step)
	switch {
	case err == nil:
		return uutreport.StepPassed
	case errors.Is(err, ErrSkip):
		return uutreport.StepSkipped
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return uutreport.StepTerminated
	default:
		r.logger.Warn("test case failed",
			zap.String("case", tc.name),
			zap.Error(err),
		)
		step.SetError(1, err.Error())

		return uutreport.StepFailed
	}
}
