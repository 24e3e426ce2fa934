// Package ledger stamps per-row processing outcomes into the status-tracking
// columns of a table. Exactly one terminal operation is applied per row.
package ledger

import (
	"time"

	"github.com/dtnitsch/company-enricher/pkg/dataset"
)

// Terminal UI_status values owned by the ledger. Success rows instead carry
// the extractor's provenance tag, optionally suffixed with FallbackSuffix.
const (
	StatusSkipped = "skipped"
	StatusEmpty   = "empty"

	// FallbackSuffix marks a success whose refinement was attempted but
	// rejected or unavailable; the scraper-only description was kept.
	FallbackSuffix = "+llm_fallback"
)

// Ledger writes terminal statuses. The clock is injectable for tests;
// timestamps are ISO-8601 UTC.
type Ledger struct {
	Now func() time.Time
}

// New returns a Ledger using the wall clock.
func New() *Ledger {
	return &Ledger{Now: time.Now}
}

func (l *Ledger) timestamp() string {
	return l.Now().UTC().Format(time.RFC3339)
}

// EnsureColumns adds the ledger columns to the table if absent. Idempotent.
func (l *Ledger) EnsureColumns(t *dataset.Table) {
	t.EnsureColumns(dataset.LedgerColumns)
}

// MarkSkipped records a row whose required input fields were missing.
// No fetch was attempted.
func (l *Ledger) MarkSkipped(t *dataset.Table, row int, reason string) {
	t.Set(row, dataset.ColUIStatus, StatusSkipped)
	t.Set(row, dataset.ColError, reason)
	t.Set(row, dataset.ColLastChecked, l.timestamp())
}

// MarkEmpty records a row whose fetch succeeded but yielded no description
// by any extraction method.
func (l *Ledger) MarkEmpty(t *dataset.Table, row int, reason string) {
	t.Set(row, dataset.ColUIStatus, StatusEmpty)
	t.Set(row, dataset.ColError, reason)
	t.Set(row, dataset.ColLastChecked, l.timestamp())
}

// MarkError records a classified fetch/transport failure. code is a
// structured tag ("error:http:404", "error:timeout", ...), not free text.
func (l *Ledger) MarkError(t *dataset.Table, row int, code, message string) {
	t.Set(row, dataset.ColUIStatus, code)
	t.Set(row, dataset.ColError, message)
	t.Set(row, dataset.ColLastChecked, l.timestamp())
}

// MarkSuccess records a derived description with its provenance tag and
// clears any previous error.
func (l *Ledger) MarkSuccess(t *dataset.Table, row int, description, statusTag string) {
	t.Set(row, dataset.ColDescription, description)
	t.Set(row, dataset.ColUIStatus, statusTag)
	t.Set(row, dataset.ColError, "")
	t.Set(row, dataset.ColLastChecked, l.timestamp())
}
