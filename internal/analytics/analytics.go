// Package analytics aggregates scan history into per-module status rates.
package analytics

import (
	"database/sql"
	"fmt"
	"math"
)

// DB is the interface for database queries used by analytics.
type DB interface {
	Conn() *sql.DB
}

// ModuleStats holds status counts for one module name across all scans.
type ModuleStats struct {
	Module   string  `json:"module"`
	Scans    int     `json:"scans"`
	Pass     int     `json:"pass"`
	Warn     int     `json:"warn"`
	Fail     int     `json:"fail"`
	Other    int     `json:"other,omitempty"`
	PassRate float64 `json:"pass_rate"`
}

// QueryModuleStats returns per-module status counts and pass rates over the
// whole scan history, ordered by module name.
func QueryModuleStats(database DB) ([]ModuleStats, error) {
	rows, err := database.Conn().Query(`
		SELECT name,
		       COUNT(*) AS scans,
		       SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END) AS pass,
		       SUM(CASE WHEN status = 'warn' THEN 1 ELSE 0 END) AS warn,
		       SUM(CASE WHEN status = 'fail' THEN 1 ELSE 0 END) AS fail
		FROM scan_modules
		GROUP BY name
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query module stats: %w", err)
	}
	defer rows.Close()

	var stats []ModuleStats
	for rows.Next() {
		var s ModuleStats
		if err := rows.Scan(&s.Module, &s.Scans, &s.Pass, &s.Warn, &s.Fail); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		s.Other = s.Scans - s.Pass - s.Warn - s.Fail
		if s.Scans > 0 {
			// Rounded to one decimal place.
			s.PassRate = math.Round(float64(s.Pass)/float64(s.Scans)*1000) / 10
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// FlakyModule is a module whose status varies across scans.
type FlakyModule struct {
	Module   string `json:"module"`
	Variants int    `json:"variants"`
	Scans    int    `json:"scans"`
}

// QueryFlakyModules returns modules observed with more than one distinct
// status, most variable first.
func QueryFlakyModules(database DB) ([]FlakyModule, error) {
	rows, err := database.Conn().Query(`
		SELECT name, COUNT(DISTINCT status) AS variants, COUNT(*) AS scans
		FROM scan_modules
		GROUP BY name
		HAVING variants > 1
		ORDER BY variants DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("query flaky modules: %w", err)
	}
	defer rows.Close()

	var flaky []FlakyModule
	for rows.Next() {
		var f FlakyModule
		if err := rows.Scan(&f.Module, &f.Variants, &f.Scans); err != nil {
			return nil, fmt.Errorf("scan flaky row: %w", err)
		}
		flaky = append(flaky, f)
	}
	return flaky, rows.Err()
}
