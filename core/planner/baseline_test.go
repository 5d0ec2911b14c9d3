package planner

import (
	"math"
	"testing"

	"github.com/kilianp07/hems/core/model"
)

func TestBaselinePlanRunsASAP(t *testing.T) {
	in := planInput(t,
		mustAppliance(t, "washer", 1.5, 2, 0, 23),
		mustAppliance(t, "dryer", 2.0, 3, 4, 23),
	)
	ev, err := model.NewEVProfile(10, 7.2, 8, 23)
	if err != nil {
		t.Fatal(err)
	}
	in.EV = &ev

	s := BaselinePlan("base", in)
	if start, _ := s.StartSlot("washer"); start != 0 {
		t.Errorf("washer baseline start = %d, want 0", start)
	}
	if start, _ := s.StartSlot("dryer"); start != 4 {
		t.Errorf("dryer baseline start = %d, want 4", start)
	}
	if got := s.EVDeliveredKWh(); math.Abs(got-10) > 1e-9 {
		t.Errorf("baseline EV delivery = %v, want 10", got)
	}
	// Full rate from plug-in: 7.2 then the 2.8 remainder.
	if s.Actions[8].RateKW != 7.2 {
		t.Errorf("slot 8 rate = %v, want 7.2", s.Actions[8].RateKW)
	}
}

func TestComputeSavings(t *testing.T) {
	in := planInput(t, mustAppliance(t, "washer", 1.5, 2, 0, 23))

	baseline := BaselinePlan("base", in)
	planned := model.NewSchedule("plan", in)
	planned.Actions[1] = model.StartAppliance("washer")

	sv := ComputeSavings(baseline, planned)
	if sv.AbsoluteCost <= 0 {
		t.Fatalf("absolute savings = %v, want positive", sv.AbsoluteCost)
	}
	if sv.Percent <= 0 || sv.Percent > 100 {
		t.Fatalf("percent savings = %v, want in (0, 100]", sv.Percent)
	}

	// A zero-cost baseline yields zero savings, never a division by zero.
	empty := model.NewSchedule("base", in)
	if sv := ComputeSavings(empty, planned); sv != (Savings{}) {
		t.Fatalf("savings against empty baseline = %+v, want zero", sv)
	}
}
