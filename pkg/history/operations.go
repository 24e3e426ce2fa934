package history

import (
	"fmt"
	"time"
)

// Run is one enrichment invocation.
type Run struct {
	RunID         int64
	CreatedAt     time.Time
	RowCount      int
	SuccessCount  int
	IssueCount    int
	RefineEnabled bool
	Model         string
}

// RowResult is the terminal outcome of one table row within a run.
type RowResult struct {
	RowIndex           int
	Company            string
	Website            string
	Status             string
	Error              string
	Language           string
	LanguageConfidence float64
}

// InsertRun creates a run record and returns its ID.
func (db *DB) InsertRun(rowCount int, refineEnabled bool, model string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (row_count, refine_enabled, model)
		VALUES (?, ?, ?)
	`, rowCount, refineEnabled, model)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return result.LastInsertId()
}

// UpdateRunStats records the final success/issue counts for a run.
func (db *DB) UpdateRunStats(runID int64, successCount, issueCount int) error {
	_, err := db.Exec(`
		UPDATE runs SET success_count = ?, issue_count = ? WHERE run_id = ?
	`, successCount, issueCount, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// InsertRowResult stores one row's terminal outcome.
func (db *DB) InsertRowResult(runID int64, r RowResult) error {
	_, err := db.Exec(`
		INSERT INTO run_rows (run_id, row_index, company, website, status, error, language, language_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, r.RowIndex, r.Company, r.Website, r.Status, r.Error, r.Language, r.LanguageConfidence)
	if err != nil {
		return fmt.Errorf("failed to insert row result: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, created_at, row_count, success_count, issue_count, refine_enabled, COALESCE(model, '')
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.RowCount, &r.SuccessCount, &r.IssueCount, &r.RefineEnabled, &r.Model); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (db *DB) GetRun(runID int64) (Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, row_count, success_count, issue_count, refine_enabled, COALESCE(model, '')
		FROM runs WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.RowCount, &r.SuccessCount, &r.IssueCount, &r.RefineEnabled, &r.Model)
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return r, nil
}

// GetRunRows returns the per-row outcomes for a run, in table order.
func (db *DB) GetRunRows(runID int64) ([]RowResult, error) {
	rows, err := db.Query(`
		SELECT row_index, COALESCE(company, ''), COALESCE(website, ''), status,
		       COALESCE(error, ''), COALESCE(language, ''), COALESCE(language_confidence, 0)
		FROM run_rows WHERE run_id = ? ORDER BY row_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run rows: %w", err)
	}
	defer rows.Close()

	var results []RowResult
	for rows.Next() {
		var r RowResult
		if err := rows.Scan(&r.RowIndex, &r.Company, &r.Website, &r.Status, &r.Error, &r.Language, &r.LanguageConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan row result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
