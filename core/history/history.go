// Package history defines the persistent record of planned days: what each
// day cost, how much energy it used and whether the budget held. The
// storage backend lives under infra.
package history

import "time"

// Record is one planned day's outcome.
type Record struct {
	Date       time.Time `json:"date"`
	CostTerm   float64   `json:"cost"`
	EnergyKWh  float64   `json:"energy_kwh"`
	SavingsPct float64   `json:"savings_pct"`
	Feasible   bool      `json:"feasible"`
	OverBudget bool      `json:"over_budget"`
	Carryovers int       `json:"carryovers"`
}

// Store persists day records.
type Store interface {
	Add(Record) error
	Query(start, end time.Time) ([]Record, error)
	Close() error
}

// Day truncates a timestamp to midnight UTC, the granularity records are
// keyed on.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NopStore discards records; used when persistence is disabled.
type NopStore struct{}

func (NopStore) Add(Record) error { return nil }

func (NopStore) Query(time.Time, time.Time) ([]Record, error) { return nil, nil }

func (NopStore) Close() error { return nil }
