package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	lerrors "layerlint/internal/errors"
	"layerlint/internal/graph"
)

// maxCacheEntries bounds the number of cached graphs kept per repo. Old
// fingerprints pile up as the tree changes; only the newest few matter.
const maxCacheEntries = 10

// ScanCache stores scanned import graphs keyed by tree fingerprint.
type ScanCache struct {
	db *DB
}

// NewScanCache creates a cache over an open database.
func NewScanCache(db *DB) *ScanCache {
	return &ScanCache{db: db}
}

// Get returns the cached graph for a fingerprint, or ok=false on a miss.
func (c *ScanCache) Get(fingerprint string) (*graph.Graph, bool, error) {
	var blob []byte
	err := c.db.conn.QueryRow(
		`SELECT blob FROM scan_cache WHERE fingerprint = ?`, fingerprint,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, lerrors.Wrap(lerrors.CacheUnavailable, "scan cache lookup failed", err)
	}

	snap, err := decodeSnapshot(blob)
	if err != nil {
		// A corrupt entry is a miss; the caller rescans and overwrites it.
		c.db.logger.Warn("Discarding corrupt scan cache entry", "fingerprint", fingerprint, "error", err)
		_, _ = c.db.conn.Exec(`DELETE FROM scan_cache WHERE fingerprint = ?`, fingerprint)
		return nil, false, nil
	}

	return graph.FromSnapshot(snap), true, nil
}

// Put stores a graph under the given fingerprint, replacing any previous
// entry, and prunes the oldest entries beyond the cache bound.
func (c *ScanCache) Put(fingerprint string, g *graph.Graph) error {
	blob, err := encodeSnapshot(g.Snapshot())
	if err != nil {
		return lerrors.Wrap(lerrors.CacheUnavailable, "encoding scan cache entry", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.conn.Exec(`
		INSERT OR REPLACE INTO scan_cache (fingerprint, blob, created_at)
		VALUES (?, ?, ?)`, fingerprint, blob, now)
	if err != nil {
		return lerrors.Wrap(lerrors.CacheUnavailable, "writing scan cache entry", err)
	}

	_, err = c.db.conn.Exec(`
		DELETE FROM scan_cache WHERE fingerprint NOT IN (
			SELECT fingerprint FROM scan_cache
			ORDER BY created_at DESC LIMIT ?
		)`, maxCacheEntries)
	if err != nil {
		return lerrors.Wrap(lerrors.CacheUnavailable, "pruning scan cache", err)
	}
	return nil
}

func encodeSnapshot(snap *graph.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decodeSnapshot(blob []byte) (*graph.Snapshot, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}
	var snap graph.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}
