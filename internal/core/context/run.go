// Package context provides run-scoped values extraction.
package context

import (
	"context"

	"catreport/internal/core/id"
)

// RunContext describes a single report generation run.
type RunContext struct {
	RunID  id.RunID
	Input  string
	Output string
}

type runContextKey struct{}

// WithRun adds RunContext to context.
func WithRun(ctx context.Context, run *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, run)
}

// GetRun returns RunContext from context.
func GetRun(ctx context.Context) *RunContext {
	if v, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return v
	}
	return nil
}

// NewRunContext creates a RunContext with a generated run ID.
func NewRunContext(input string) *RunContext {
	return &RunContext{
		RunID: id.NewRun(),
		Input: input,
	}
}
