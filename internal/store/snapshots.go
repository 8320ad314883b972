package store

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/PatrickWeller/panelpal/internal/panelapp"
)

// SavePanelSnapshot stores a panel's gene list at a specific version using
// the DuckDB Appender API. Saving the same panel version twice replaces the
// previous snapshot.
func (s *Store) SavePanelSnapshot(p *panelapp.Panel) error {
	if _, err := s.db.Exec(
		`DELETE FROM panel_snapshots WHERE panel_id = ? AND panel_version = ?`,
		p.ID, p.Version,
	); err != nil {
		return fmt.Errorf("clear old snapshot: %w", err)
	}

	// Deduplicate symbols; PanelApp occasionally lists a gene twice.
	seen := make(map[string]bool, len(p.Genes))

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "panel_snapshots")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, g := range p.Genes {
		if seen[g.Symbol] {
			continue
		}
		seen[g.Symbol] = true
		if err := appender.AppendRow(p.ID, p.Version, g.Symbol, int32(g.Confidence)); err != nil {
			return fmt.Errorf("append snapshot gene: %w", err)
		}
	}

	return appender.Flush()
}

// PanelSnapshot returns the stored gene list for a panel version as a
// Panel value, or (nil, nil) when no snapshot exists.
func (s *Store) PanelSnapshot(panelID, version string) (*panelapp.Panel, error) {
	rows, err := s.db.Query(
		`SELECT gene_symbol, confidence FROM panel_snapshots
		 WHERE panel_id = ? AND panel_version = ? ORDER BY gene_symbol`,
		panelID, version,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s v%s: %w", panelID, version, err)
	}
	defer rows.Close()

	p := &panelapp.Panel{ID: panelID, Version: version}
	for rows.Next() {
		var g panelapp.Gene
		if err := rows.Scan(&g.Symbol, &g.Confidence); err != nil {
			return nil, fmt.Errorf("scan snapshot gene: %w", err)
		}
		p.Genes = append(p.Genes, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}

	if len(p.Genes) == 0 {
		return nil, nil
	}
	return p, nil
}

// SnapshotVersions lists the stored versions for a panel, oldest first.
func (s *Store) SnapshotVersions(panelID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT panel_version FROM panel_snapshots
		 WHERE panel_id = ? ORDER BY panel_version`,
		panelID,
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot versions for %s: %w", panelID, err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
