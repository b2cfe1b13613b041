package storage

// schema creates the scan cache table. Entries are keyed by the tree
// fingerprint of the scanned source files; the blob is a zstd-compressed
// JSON snapshot of the import graph.
const schema = `
CREATE TABLE IF NOT EXISTS scan_cache (
	fingerprint TEXT PRIMARY KEY,
	blob        BLOB NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_cache_created_at ON scan_cache(created_at);
`
