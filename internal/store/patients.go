package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Patient identifies a person an analysis was run for.
type Patient struct {
	NHSNumber string
	Name      string
	DOB       time.Time
}

// BedRecord links a generated BED file to a patient and a panel version.
type BedRecord struct {
	NHSNumber    string
	AnalysisDate time.Time
	BedPath      string
	MergedPath   string
	PanelID      string
	PanelVersion string
	GenomeBuild  string
}

// AddPatient inserts a patient. Re-adding the same NHS number is an error;
// DuckDB enforces the primary key.
func (s *Store) AddPatient(p Patient) error {
	_, err := s.db.Exec(
		`INSERT INTO patients (nhs_number, name, dob) VALUES (?, ?, ?)`,
		p.NHSNumber, p.Name, p.DOB,
	)
	if err != nil {
		return fmt.Errorf("add patient %s: %w", p.NHSNumber, err)
	}
	return nil
}

// GetPatient looks up a patient by NHS number. Returns (nil, nil) when the
// patient is not recorded.
func (s *Store) GetPatient(nhsNumber string) (*Patient, error) {
	row := s.db.QueryRow(
		`SELECT nhs_number, name, dob FROM patients WHERE nhs_number = ?`,
		nhsNumber,
	)

	var p Patient
	if err := row.Scan(&p.NHSNumber, &p.Name, &p.DOB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient %s: %w", nhsNumber, err)
	}
	return &p, nil
}

// ListPatients returns all recorded patients ordered by NHS number.
func (s *Store) ListPatients() ([]Patient, error) {
	rows, err := s.db.Query(`SELECT nhs_number, name, dob FROM patients ORDER BY nhs_number`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.NHSNumber, &p.Name, &p.DOB); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

// RecordBedFile links a generated BED file to a patient.
func (s *Store) RecordBedFile(r BedRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO bed_files
			(nhs_number, analysis_date, bed_path, merged_path, panel_id, panel_version, genome_build)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.NHSNumber, r.AnalysisDate, r.BedPath, r.MergedPath, r.PanelID, r.PanelVersion, r.GenomeBuild,
	)
	if err != nil {
		return fmt.Errorf("record bed file for %s: %w", r.NHSNumber, err)
	}
	return nil
}

// PatientBedFiles returns all BED records for a patient, newest first.
func (s *Store) PatientBedFiles(nhsNumber string) ([]BedRecord, error) {
	rows, err := s.db.Query(
		`SELECT nhs_number, analysis_date, bed_path, merged_path, panel_id, panel_version, genome_build
		 FROM bed_files WHERE nhs_number = ? ORDER BY analysis_date DESC`,
		nhsNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("bed files for %s: %w", nhsNumber, err)
	}
	defer rows.Close()

	return scanBedRecords(rows)
}

// PanelPatients returns all BED records generated from a panel, any version.
func (s *Store) PanelPatients(panelID string) ([]BedRecord, error) {
	rows, err := s.db.Query(
		`SELECT nhs_number, analysis_date, bed_path, merged_path, panel_id, panel_version, genome_build
		 FROM bed_files WHERE panel_id = ? ORDER BY analysis_date DESC`,
		panelID,
	)
	if err != nil {
		return nil, fmt.Errorf("patients for panel %s: %w", panelID, err)
	}
	defer rows.Close()

	return scanBedRecords(rows)
}

func scanBedRecords(rows *sql.Rows) ([]BedRecord, error) {
	var records []BedRecord
	for rows.Next() {
		var r BedRecord
		if err := rows.Scan(&r.NHSNumber, &r.AnalysisDate, &r.BedPath, &r.MergedPath,
			&r.PanelID, &r.PanelVersion, &r.GenomeBuild); err != nil {
			return nil, fmt.Errorf("scan bed record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
