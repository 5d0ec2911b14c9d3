package history

import (
	"path/filepath"
	"testing"
	"time"

	core "github.com/kilianp07/hems/core/history"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	day1 := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	if err := store.Add(core.Record{Date: day1, CostTerm: 3.2, EnergyKWh: 18, SavingsPct: 12, Feasible: true}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(core.Record{Date: day2, CostTerm: 4.1, EnergyKWh: 22, OverBudget: true, Carryovers: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	recs, err := store.Query(day1, day2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if !recs[0].Date.Equal(core.Day(day1)) || recs[0].CostTerm != 3.2 || !recs[0].Feasible {
		t.Fatalf("first record = %+v", recs[0])
	}
	if !recs[1].OverBudget || recs[1].Carryovers != 1 {
		t.Fatalf("second record = %+v", recs[1])
	}
}

func TestSQLiteStoreReplacesDay(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	day := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	if err := store.Add(core.Record{Date: day, CostTerm: 5}); err != nil {
		t.Fatal(err)
	}
	// Same day replanned later with a better outcome.
	if err := store.Add(core.Record{Date: day.Add(6 * time.Hour), CostTerm: 3, Feasible: true}); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Query(day, day)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1 after replace", len(recs))
	}
	if recs[0].CostTerm != 3 || !recs[0].Feasible {
		t.Fatalf("record = %+v", recs[0])
	}
}
