// Package refine rewrites a scraper-derived company description through a
// generative text-completion backend. Failure is never an error: every call
// returns either an improved description or an explicit unavailable result,
// and the caller falls back to the scraper output.
package refine

import "context"

// Request carries everything the backend may ground the rewrite on. The
// current description is deliberately always empty: previously stored
// descriptions are never trusted as ground truth since site content drifts.
type Request struct {
	Company            string
	Website            string
	ExtractedText      string
	CurrentDescription string
}

// Result is a tagged variant: either an improved description or an
// unavailable signal with a reason. Callers branch on Unavailable instead of
// on errors.
type Result struct {
	Description string
	Unavailable bool
	Reason      string
}

// Improved wraps a usable rewritten description.
func Improved(description string) Result {
	return Result{Description: description}
}

// NotAvailable signals that no improved description could be produced.
func NotAvailable(reason string) Result {
	return Result{Unavailable: true, Reason: reason}
}

// Client is the refinement contract. Implementations absorb every internal
// failure into an unavailable Result; Rewrite never returns an error.
type Client interface {
	Rewrite(ctx context.Context, req Request) Result
	Enabled() bool
}

// Disabled is the no-op client used when no credential is configured; the
// pipeline then runs in scraper-only mode.
type Disabled struct{}

func (Disabled) Rewrite(ctx context.Context, req Request) Result {
	return NotAvailable("refinement disabled: no API key configured")
}

func (Disabled) Enabled() bool { return false }
