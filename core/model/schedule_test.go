package model

import (
	"math"
	"testing"
)

func testInput(t *testing.T) *Input {
	t.Helper()
	washer, err := NewAppliance("washer", 1.5, 2, 0, 23)
	if err != nil {
		t.Fatal(err)
	}
	hvac, err := NewUniformHVACProfile(DefaultHorizon, ComfortBand{Min: 68, Max: 76}, 72, 85, 0.25, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := NewEVProfile(10, 7.2, 20, 23)
	if err != nil {
		t.Fatal(err)
	}
	budget, err := NewBudgetState(600, 0, 30)
	if err != nil {
		t.Fatal(err)
	}
	return &Input{
		Prices:     StandardTOU(),
		Appliances: []Appliance{washer},
		HVAC:       hvac,
		EV:         &ev,
		Budget:     budget,
	}
}

func TestNewScheduleIsAllNoOps(t *testing.T) {
	in := testInput(t)
	s := NewSchedule("p1", in)
	if len(s.Actions) != in.Horizon() {
		t.Fatalf("got %d actions, want %d", len(s.Actions), in.Horizon())
	}
	for i, a := range s.Actions {
		if a.Type != ActionNoOp {
			t.Fatalf("slot %d is %s, want no-op", i, a)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSchedule("p1", testInput(t))
	c := s.Clone()
	c.Actions[3] = StartAppliance("washer")
	if s.Actions[3].Type != ActionNoOp {
		t.Fatal("clone mutation leaked into original")
	}
	if c.Input != s.Input {
		t.Fatal("clone must share the immutable input")
	}
}

func TestRunWindowAndCompletion(t *testing.T) {
	in := testInput(t)
	s := NewSchedule("p1", in)
	washer := in.Appliances[0]

	if s.Completes(washer) {
		t.Fatal("unstarted appliance must not complete")
	}
	if missed := s.MissedAppliances(); len(missed) != 1 || missed[0].ID != "washer" {
		t.Fatalf("MissedAppliances = %v, want the washer", missed)
	}

	s.Actions[5] = StartAppliance("washer")
	w, ok := s.RunWindow(washer)
	if !ok {
		t.Fatal("expected a run window")
	}
	if w.From != 5 || w.To != 6 {
		t.Fatalf("run window = %+v, want [5, 6]", w)
	}
	if !s.Completes(washer) {
		t.Fatal("washer must complete inside its window")
	}
	if len(s.MissedAppliances()) != 0 {
		t.Fatal("no appliance should be missed")
	}
}

func TestInterruptibleStopShortensRun(t *testing.T) {
	in := testInput(t)
	washer := in.Appliances[0]
	washer.Interruptible = true
	washer.DurationSlots = 4
	in.Appliances[0] = washer

	s := NewSchedule("p1", in)
	s.Actions[5] = StartAppliance("washer")
	s.Actions[7] = StopAppliance("washer")

	w, ok := s.RunWindow(washer)
	if !ok {
		t.Fatal("expected a run window")
	}
	if w.From != 5 || w.To != 6 {
		t.Fatalf("run window = %+v, want [5, 6]", w)
	}
	if s.Completes(washer) {
		t.Fatal("interrupted run must not count as complete")
	}
}

func TestSetpointsFold(t *testing.T) {
	in := testInput(t)
	s := NewSchedule("p1", in)
	s.Actions[4] = SetHVAC(74)
	s.Actions[10] = SetHVAC(72)

	sp := s.Setpoints()
	if sp[0] != 72 || sp[3] != 72 {
		t.Errorf("slots before the first change must hold 72, got %v/%v", sp[0], sp[3])
	}
	if sp[4] != 74 || sp[9] != 74 {
		t.Errorf("slots 4-9 must hold 74, got %v/%v", sp[4], sp[9])
	}
	if sp[10] != 72 || sp[23] != 72 {
		t.Errorf("slots from 10 on must hold 72, got %v/%v", sp[10], sp[23])
	}
}

func TestEnergyAndCost(t *testing.T) {
	in := testInput(t)
	s := NewSchedule("p1", in)
	s.Actions[1] = StartAppliance("washer")
	s.Actions[20] = ChargeEV(7.2)
	s.Actions[21] = ChargeEV(2.8)

	if got := s.EVDeliveredKWh(); math.Abs(got-10) > 1e-9 {
		t.Errorf("EVDeliveredKWh = %v, want 10", got)
	}

	// HVAC holds 72F against 85F outdoors: 13 degrees at 0.25 kWh each,
	// every slot.
	hvacPerSlot := 0.25 * 13
	wantEnergy := 24*hvacPerSlot + 1.5*2 + 10
	if got := s.TotalEnergyKWh(); math.Abs(got-wantEnergy) > 1e-9 {
		t.Errorf("TotalEnergyKWh = %v, want %v", got, wantEnergy)
	}

	total, fixed := s.AppliancePowerAt(2)
	if total != 1.5 || fixed != 1.5 {
		t.Errorf("AppliancePowerAt(2) = %v/%v, want 1.5/1.5", total, fixed)
	}

	if got := s.TotalCost(); got <= 0 {
		t.Errorf("TotalCost = %v, want positive", got)
	}
}
