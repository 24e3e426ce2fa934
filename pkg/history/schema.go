package history

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one record per enrichment invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    row_count INTEGER NOT NULL,
    success_count INTEGER DEFAULT 0,
    issue_count INTEGER DEFAULT 0,
    refine_enabled BOOLEAN NOT NULL,
    model TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Run rows: per-row terminal outcome within a run
CREATE TABLE IF NOT EXISTS run_rows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    row_index INTEGER NOT NULL,
    company TEXT,
    website TEXT,
    status TEXT NOT NULL,
    error TEXT,
    language TEXT,
    language_confidence REAL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, row_index)
);

CREATE INDEX IF NOT EXISTS idx_run_rows_run ON run_rows(run_id);
CREATE INDEX IF NOT EXISTS idx_run_rows_status ON run_rows(status);
`
