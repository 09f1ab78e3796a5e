package db

// SchemaSQL is the complete schema for fresh autofix installs.
//
// This is the single source of truth for the database layout. All
// repository tests load it via GetSchemaSQL() so that test and
// production schemas cannot drift: a repository referencing a missing
// column fails immediately with "no such column".
const SchemaSQL = `
-- Violations (written by the import/detection pipeline, read here;
-- only the fixed flag is ever updated by the autofix engine)
CREATE TABLE IF NOT EXISTS violations (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	category TEXT NOT NULL,
	type TEXT NOT NULL,
	node_id TEXT NOT NULL,
	node_name TEXT,
	snapshot TEXT NOT NULL DEFAULT '{}',
	fixed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_violations_project ON violations(project_id);

-- Fix history (one row per executed batch; diffs for rollback inline)
CREATE TABLE IF NOT EXISTS fix_history (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	actor_id TEXT NOT NULL,
	batch_kind TEXT NOT NULL CHECK(batch_kind IN ('individual', 'bulk')),
	violation_ids TEXT NOT NULL DEFAULT '[]',
	fixed_violation_ids TEXT NOT NULL DEFAULT '[]',
	before_score REAL NOT NULL DEFAULT 0,
	after_score REAL,
	score_delta REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('PENDING', 'EXECUTING', 'COMPLETED', 'FAILED', 'ROLLED_BACK')),
	changes TEXT NOT NULL DEFAULT '[]',
	executed_at DATETIME NOT NULL,
	completed_at DATETIME,
	rolled_back_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_fix_history_project ON fix_history(project_id);
CREATE INDEX IF NOT EXISTS idx_fix_history_status ON fix_history(status);
`

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
