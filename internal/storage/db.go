// Package storage persists scanned import graphs in a SQLite cache under
// the repo's .layerlint directory.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"layerlint/internal/paths"
)

// DB wraps the SQLite connection holding the scan cache.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the cache database at .layerlint/cache.db.
func Open(repoRoot string, logger *slog.Logger) (*DB, error) {
	toolDir := paths.ToolDir(repoRoot)
	if err := os.MkdirAll(toolDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", paths.ToolDirName, err)
	}

	dbPath := filepath.Join(toolDir, "cache.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
		"PRAGMA temp_store=MEMORY",  // Use memory for temp tables
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Debug("Creating new cache database", "path", dbPath)
	}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

func (db *DB) initializeSchema() error {
	_, err := db.conn.Exec(schema)
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
