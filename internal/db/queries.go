package db

import (
	"database/sql"
	"fmt"

	"github.com/lucasnoah/readqc/internal/report"
)

// Scan represents a row in the scans table.
type Scan struct {
	ID          int64
	InputPath   string
	ReportPath  string
	ModuleCount int
	GatePassed  *bool
	Timestamp   string
}

// ScanModule represents a row in the scan_modules table.
type ScanModule struct {
	ID      int64
	ScanID  int64
	Name    string
	Status  report.Status
	Summary string
}

// LogScan records one parsed report and its modules in a single
// transaction. gatePassed may be nil when no gate was applied.
func (d *DB) LogScan(inputPath, reportPath string, res *report.Results, gatePassed *bool) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin log scan: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec(
		`INSERT INTO scans (input_path, report_path, module_count, gate_passed) VALUES (?, ?, ?, ?)`,
		inputPath, reportPath, res.Len(), gatePassed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}
	scanID, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scan id: %w", err)
	}

	for _, m := range res.Modules() {
		if _, err := tx.Exec(
			`INSERT INTO scan_modules (scan_id, name, status, summary) VALUES (?, ?, ?, ?)`,
			scanID, m.Name, string(m.Status), moduleSummary(m),
		); err != nil {
			return 0, fmt.Errorf("insert module %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit log scan: %w", err)
	}
	return scanID, nil
}

// moduleSummary condenses a module's structured content to one line.
func moduleSummary(m *report.Module) string {
	switch m.Kind {
	case report.KindTable:
		if m.Table == nil {
			return "no table"
		}
		return fmt.Sprintf("%d rows", len(m.Table.Rows))
	case report.KindFields:
		return fmt.Sprintf("%d fields", len(m.Fields))
	default:
		return fmt.Sprintf("%d bytes", len(m.Raw))
	}
}

// ScanHistory returns scans newest first. Pass "" to return all inputs.
func (d *DB) ScanHistory(inputPath string) ([]Scan, error) {
	query := `SELECT id, input_path, report_path, module_count, gate_passed, timestamp
	          FROM scans`
	var args []interface{}
	if inputPath != "" {
		query += ` WHERE input_path = ?`
		args = append(args, inputPath)
	}
	query += ` ORDER BY id DESC`

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// LatestScan returns the most recent scan for an input path, or nil when
// the input has never been scanned.
func (d *DB) LatestScan(inputPath string) (*Scan, error) {
	rows, err := d.conn.Query(
		`SELECT id, input_path, report_path, module_count, gate_passed, timestamp
		 FROM scans WHERE input_path = ? ORDER BY id DESC LIMIT 1`,
		inputPath,
	)
	if err != nil {
		return nil, fmt.Errorf("latest scan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	s, err := scanRow(rows)
	if err != nil {
		return nil, err
	}
	return &s, rows.Err()
}

func scanRow(rows *sql.Rows) (Scan, error) {
	var s Scan
	var gatePassed sql.NullBool
	if err := rows.Scan(&s.ID, &s.InputPath, &s.ReportPath, &s.ModuleCount, &gatePassed, &s.Timestamp); err != nil {
		return Scan{}, fmt.Errorf("scan row: %w", err)
	}
	if gatePassed.Valid {
		s.GatePassed = &gatePassed.Bool
	}
	return s, nil
}

// ModulesForScan returns the recorded modules for one scan in insertion
// order.
func (d *DB) ModulesForScan(scanID int64) ([]ScanModule, error) {
	rows, err := d.conn.Query(
		`SELECT id, scan_id, name, status, summary FROM scan_modules
		 WHERE scan_id = ? ORDER BY id`,
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("modules for scan: %w", err)
	}
	defer rows.Close()

	var mods []ScanModule
	for rows.Next() {
		var m ScanModule
		var summary sql.NullString
		var status string
		if err := rows.Scan(&m.ID, &m.ScanID, &m.Name, &status, &summary); err != nil {
			return nil, fmt.Errorf("scan module row: %w", err)
		}
		m.Status = report.Status(status)
		if summary.Valid {
			m.Summary = summary.String
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}
