package model

import (
	"errors"
	"testing"
)

func TestNewApplianceValidation(t *testing.T) {
	cases := []struct {
		name               string
		id                 string
		power              float64
		duration           int
		earliest, deadline TimeSlot
		wantErr            bool
	}{
		{"valid", "washer", 1.5, 2, 0, 23, false},
		{"empty id", "", 1.5, 2, 0, 23, true},
		{"zero power", "washer", 0, 2, 0, 23, true},
		{"zero duration", "washer", 1.5, 0, 0, 23, true},
		{"negative earliest", "washer", 1.5, 2, -1, 23, true},
		{"deadline before earliest", "washer", 1.5, 2, 10, 5, true},
		// Too tight to complete, but well-formed: the planner reports
		// that as infeasibility, not as bad input.
		{"tight deadline", "washer", 1.5, 4, 10, 11, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAppliance(tc.id, tc.power, tc.duration, tc.earliest, tc.deadline)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error is %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestApplianceWindows(t *testing.T) {
	a, err := NewAppliance("dishwasher", 1.2, 2, 3, 9)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.LatestStart(); got != 8 {
		t.Errorf("LatestStart = %d, want 8", got)
	}
	if got := a.Slack(); got != 5 {
		t.Errorf("Slack = %d, want 5", got)
	}
	if got := a.EnergyKWh(); got != 2.4 {
		t.Errorf("EnergyKWh = %v, want 2.4", got)
	}

	tight, err := NewAppliance("oven", 2.5, 4, 10, 11)
	if err != nil {
		t.Fatal(err)
	}
	if got := tight.Slack(); got != -2 {
		t.Errorf("tight Slack = %d, want -2", got)
	}
}

func TestNewEVProfileValidation(t *testing.T) {
	if _, err := NewEVProfile(-1, 7.2, 0, 6); err == nil {
		t.Error("expected error for negative energy")
	}
	if _, err := NewEVProfile(10, 0, 0, 6); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := NewEVProfile(10, 7.2, 6, 2); err == nil {
		t.Error("expected error for ready-by before plug-in")
	}
	ev, err := NewEVProfile(10, 7.2, 20, 23)
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.WindowSlots(); got != 4 {
		t.Errorf("WindowSlots = %d, want 4", got)
	}
	if !ev.Deliverable() {
		t.Error("10 kWh over 4 slots at 7.2 kW must be deliverable")
	}
	short, err := NewEVProfile(30, 7.2, 21, 23)
	if err != nil {
		t.Fatal(err)
	}
	if short.Deliverable() {
		t.Error("30 kWh over 3 slots at 7.2 kW must not be deliverable")
	}
}

func TestNewBudgetStateValidation(t *testing.T) {
	if _, err := NewBudgetState(0, 0, 30); err == nil {
		t.Error("expected error for zero allowance")
	}
	if _, err := NewBudgetState(600, -1, 30); err == nil {
		t.Error("expected error for negative usage")
	}
	if _, err := NewBudgetState(600, 0, 0); err == nil {
		t.Error("expected error for zero days remaining")
	}
	b, err := NewBudgetState(600, 450, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.RemainingKWh(); got != 150 {
		t.Errorf("RemainingKWh = %v, want 150", got)
	}
}
