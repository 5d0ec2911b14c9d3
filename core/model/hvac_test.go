package model

import (
	"math"
	"testing"
)

func TestComfortBand(t *testing.T) {
	b := ComfortBand{Min: 68, Max: 76}
	if !b.Contains(72) || !b.Contains(68) || !b.Contains(76) {
		t.Error("band must contain its bounds and interior")
	}
	if b.Contains(66) || b.Contains(80) {
		t.Error("band must exclude outside values")
	}
	if got := b.Deviation(72); got != 0 {
		t.Errorf("Deviation(72) = %v, want 0", got)
	}
	if got := b.Deviation(66); got != 2 {
		t.Errorf("Deviation(66) = %v, want 2", got)
	}
	if got := b.Deviation(79); got != 3 {
		t.Errorf("Deviation(79) = %v, want 3", got)
	}
}

func TestNewHVACProfileValidation(t *testing.T) {
	if _, err := NewHVACProfile(nil, 72, 85, 0.25, 0.1); err == nil {
		t.Error("expected error for missing bands")
	}
	bad := []ComfortBand{{Min: 76, Max: 68}}
	if _, err := NewHVACProfile(bad, 72, 85, 0.25, 0.1); err == nil {
		t.Error("expected error for inverted band")
	}
	good := []ComfortBand{{Min: 68, Max: 76}}
	if _, err := NewHVACProfile(good, 72, 85, -0.25, 0.1); err == nil {
		t.Error("expected error for negative coefficient")
	}
	if _, err := NewUniformHVACProfile(0, ComfortBand{Min: 68, Max: 76}, 72, 85, 0.25, 0.1); err == nil {
		t.Error("expected error for zero horizon")
	}
}

func TestSlotEnergy(t *testing.T) {
	h, err := NewUniformHVACProfile(24, ComfortBand{Min: 68, Max: 76}, 72, 85, 0.25, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	// Holding 72F against 85F: 13 degrees of cooling.
	if got := h.SlotEnergy(72, 72); math.Abs(got-3.25) > 1e-9 {
		t.Errorf("SlotEnergy(72, 72) = %v, want 3.25", got)
	}
	// Raising the setpoint saves cooling but pays inertia.
	want := 0.25*11 + 0.1*2
	if got := h.SlotEnergy(74, 72); math.Abs(got-want) > 1e-9 {
		t.Errorf("SlotEnergy(74, 72) = %v, want %v", got, want)
	}
	// A setpoint above the outdoor temperature needs no cooling.
	if got := h.SlotEnergy(90, 90); got != 0 {
		t.Errorf("SlotEnergy(90, 90) = %v, want 0", got)
	}
}

func TestTraceDominant(t *testing.T) {
	e := TraceEntry{Factors: []Factor{
		{Kind: FactorPrice, Contribution: 80},
		{Kind: FactorDeadline, Contribution: 12},
	}}
	if got := e.Dominant().Kind; got != FactorPrice {
		t.Errorf("Dominant = %s, want price", got)
	}
	empty := TraceEntry{}
	if got := empty.Dominant().Kind; got != FactorPrice {
		t.Errorf("empty Dominant = %s, want price default", got)
	}
}
