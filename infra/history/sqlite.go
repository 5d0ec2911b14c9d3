// Package history provides the SQLite-backed day record store.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	core "github.com/kilianp07/hems/core/history"
)

// SQLiteStore persists day records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS plan_day (
        day INTEGER PRIMARY KEY,
        cost REAL,
        energy REAL,
        savings_pct REAL,
        feasible INTEGER,
        over_budget INTEGER,
        carryovers INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts or replaces the record for its day. Replanning a day
// overwrites the earlier outcome.
func (s *SQLiteStore) Add(r core.Record) error {
	d := core.Day(r.Date)
	_, err := s.db.Exec(`INSERT INTO plan_day (day, cost, energy, savings_pct, feasible, over_budget, carryovers)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(day) DO UPDATE SET
            cost = excluded.cost,
            energy = excluded.energy,
            savings_pct = excluded.savings_pct,
            feasible = excluded.feasible,
            over_budget = excluded.over_budget,
            carryovers = excluded.carryovers`,
		d.Unix(), r.CostTerm, r.EnergyKWh, r.SavingsPct, boolInt(r.Feasible), boolInt(r.OverBudget), r.Carryovers)
	return err
}

// Query returns records in [start, end], oldest first.
func (s *SQLiteStore) Query(start, end time.Time) ([]core.Record, error) {
	rows, err := s.db.Query(`SELECT day, cost, energy, savings_pct, feasible, over_budget, carryovers
        FROM plan_day WHERE day >= ? AND day <= ? ORDER BY day`,
		core.Day(start).Unix(), core.Day(end).Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []core.Record
	for rows.Next() {
		var ts int64
		var feasible, over int
		var r core.Record
		if err := rows.Scan(&ts, &r.CostTerm, &r.EnergyKWh, &r.SavingsPct, &feasible, &over, &r.Carryovers); err != nil {
			return nil, err
		}
		r.Date = time.Unix(ts, 0).UTC()
		r.Feasible = feasible != 0
		r.OverBudget = over != 0
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
