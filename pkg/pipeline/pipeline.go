// Package pipeline orchestrates per-row enrichment: URL normalization,
// per-domain pacing, fetch, description extraction, optional refinement,
// and the terminal ledger stamp. Rows are processed sequentially and
// independently; every per-row failure becomes a ledger entry, never an
// aborted run.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/company-enricher/internal/common"
	"github.com/dtnitsch/company-enricher/models"
	"github.com/dtnitsch/company-enricher/pkg/dataset"
	"github.com/dtnitsch/company-enricher/pkg/extract"
	"github.com/dtnitsch/company-enricher/pkg/fetcher"
	"github.com/dtnitsch/company-enricher/pkg/history"
	"github.com/dtnitsch/company-enricher/pkg/ledger"
	"github.com/dtnitsch/company-enricher/pkg/refine"
)

// minAcceptRunes is the shortest refined description the pipeline trusts.
// Anything shorter falls back to the scraper output.
const minAcceptRunes = 30

// Skip/empty reasons recorded in the ledger.
const (
	reasonEmptyRow      = "Empty row (Company and Website missing)"
	reasonNoWebsite     = "Website is empty"
	reasonNoDescription = "No description found (meta/jsonld/main_text)"
)

// Fetcher fetches one page. The production implementation is
// pkg/fetcher.Fetcher; tests substitute stubs.
type Fetcher interface {
	Get(rawURL string) ([]byte, error)
}

// Extractor derives a description from fetched markup.
type Extractor interface {
	Extract(html, rawURL string) (extract.Result, bool)
}

// Stats summarizes a completed run.
type Stats struct {
	Total   int
	Success int
	Skipped int
	Empty   int
	Failed  int
}

// Issues counts rows that ended with the Error column set.
func (s Stats) Issues() int {
	return s.Skipped + s.Empty + s.Failed
}

// Processor walks a table row by row. One shared mutable resource crosses
// rows: the per-domain last-fetch map inside the limiter.
type Processor struct {
	cfg       models.Config
	fetcher   Fetcher
	extractor Extractor
	refiner   refine.Client
	ledger    *ledger.Ledger
	logger    *slog.Logger
	limiter   *domainLimiter

	// Optional run-history sink.
	hist  *history.DB
	runID int64

	now   func() time.Time
	sleep func(time.Duration)
}

// New builds a Processor with the wall clock. Tests override now/sleep.
func New(cfg models.Config, f Fetcher, e Extractor, r refine.Client, logger *slog.Logger) *Processor {
	p := &Processor{
		cfg:       cfg,
		fetcher:   f,
		extractor: e,
		refiner:   r,
		ledger:    ledger.New(),
		logger:    logger,
		now:       time.Now,
		sleep:     time.Sleep,
	}
	p.limiter = newDomainLimiter(cfg.PerDomainDelay, func() time.Time { return p.now() }, func(d time.Duration) { p.sleep(d) })
	return p
}

// AttachHistory makes the processor record per-row outcomes under runID.
func (p *Processor) AttachHistory(db *history.DB, runID int64) {
	p.hist = db
	p.runID = runID
}

// Run processes every row of the table exactly once and stamps a terminal
// status for each. The required input columns must already be verified by
// the caller; ledger columns are created here (idempotent).
func (p *Processor) Run(ctx context.Context, table *dataset.Table) Stats {
	p.ledger.EnsureColumns(table)

	stats := Stats{Total: table.Len()}
	for i := 0; i < table.Len(); i++ {
		extracted := p.processRow(ctx, table, i, &stats)
		p.recordRow(table, i, extracted)
	}

	p.logger.Info("Enrichment pass finished",
		"total", stats.Total, "success", stats.Success,
		"skipped", stats.Skipped, "empty", stats.Empty, "failed", stats.Failed)
	return stats
}

func (p *Processor) processRow(ctx context.Context, table *dataset.Table, row int, stats *Stats) extract.Result {
	company := common.SafeString(table.Get(row, dataset.ColCompany))
	url := common.NormalizeURL(table.Get(row, dataset.ColWebsite))

	if company == "" && url == "" {
		p.ledger.MarkSkipped(table, row, reasonEmptyRow)
		stats.Skipped++
		return extract.Result{}
	}
	if url == "" {
		p.ledger.MarkSkipped(table, row, reasonNoWebsite)
		stats.Skipped++
		return extract.Result{}
	}

	domain := common.DomainOf(url)
	p.limiter.Wait(domain)

	body, err := p.fetcher.Get(url)
	p.limiter.Record(domain)
	if err != nil {
		fe := fetcher.Classify(url, err)
		p.logger.Warn("Fetch failed", "row", row, "url", url, "code", fe.Code(), "error", fe.Message())
		p.ledger.MarkError(table, row, fe.Code(), fe.Message())
		stats.Failed++
		return extract.Result{}
	}

	extracted, ok := p.extractor.Extract(string(body), url)
	if !ok {
		p.logger.Info("No description derivable", "row", row, "url", url)
		p.ledger.MarkEmpty(table, row, reasonNoDescription)
		stats.Empty++
		return extract.Result{}
	}

	description, statusTag := p.refineOrFallback(ctx, company, url, extracted)
	p.ledger.MarkSuccess(table, row, description, statusTag)
	stats.Success++
	p.logger.Info("Row enriched", "row", row, "url", url, "status", statusTag)
	return extracted
}

// refineOrFallback runs the single refinement call for a row. Refinement is
// strictly additive: a rejected or unavailable result keeps the scraper
// description and only changes the status tag.
func (p *Processor) refineOrFallback(ctx context.Context, company, url string, extracted extract.Result) (string, string) {
	req := refine.Request{
		Company:       company,
		Website:       url,
		ExtractedText: truncateRunes(extracted.Description, p.cfg.LLMContextChars),
		// Prior stored descriptions are never passed along: site content
		// drifts and the old text must not anchor the rewrite.
		CurrentDescription: "",
	}

	result := p.refiner.Rewrite(ctx, req)
	if result.Unavailable {
		if p.refiner.Enabled() {
			p.logger.Warn("Refinement unavailable", "company", company, "url", url, "reason", result.Reason)
		}
		return extracted.Description, extracted.Provenance + ledger.FallbackSuffix
	}

	improved := strings.TrimSpace(result.Description)
	if utf8.RuneCountInString(improved) < minAcceptRunes {
		return extracted.Description, extracted.Provenance + ledger.FallbackSuffix
	}
	return improved, extracted.Provenance
}

// recordRow mirrors the row's terminal ledger state into run history,
// together with the extractor's language tag when one was derived.
func (p *Processor) recordRow(table *dataset.Table, row int, extracted extract.Result) {
	if p.hist == nil {
		return
	}
	result := history.RowResult{
		RowIndex:           row,
		Company:            common.SafeString(table.Get(row, dataset.ColCompany)),
		Website:            common.NormalizeURL(table.Get(row, dataset.ColWebsite)),
		Status:             table.Get(row, dataset.ColUIStatus),
		Error:              table.Get(row, dataset.ColError),
		Language:           extracted.Language,
		LanguageConfidence: extracted.LanguageConfidence,
	}
	if err := p.hist.InsertRowResult(p.runID, result); err != nil {
		p.logger.Warn("Failed to record row result", "row", row, "error", err)
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
