package store

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

const analysesTable = `
CREATE TABLE IF NOT EXISTS analyses (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    hash        TEXT NOT NULL UNIQUE,
    run_id      TEXT NOT NULL,
    name        TEXT NOT NULL,
    path        TEXT NOT NULL,
    tjmax       REAL NOT NULL,
    analyzed_at INTEGER NOT NULL,
    metrics     BLOB NOT NULL,
    summary     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_name ON analyses(name);
CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
`

const currentSchemaVersion = 1
