// Package store persists patient and analysis metadata in DuckDB.
// It records which BED files were generated for which patients, and
// snapshots of panel gene lists at the version used for an analysis.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for patient/analysis metadata.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS patients (
			nhs_number VARCHAR PRIMARY KEY,
			name VARCHAR,
			dob DATE
		)`,
		`CREATE TABLE IF NOT EXISTS bed_files (
			nhs_number VARCHAR,
			analysis_date DATE,
			bed_path VARCHAR,
			merged_path VARCHAR,
			panel_id VARCHAR,
			panel_version VARCHAR,
			genome_build VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS panel_snapshots (
			panel_id VARCHAR,
			panel_version VARCHAR,
			gene_symbol VARCHAR,
			confidence INTEGER,
			PRIMARY KEY (panel_id, panel_version, gene_symbol)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
