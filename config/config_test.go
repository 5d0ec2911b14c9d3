package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilianp07/hems/core/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `planner:
  max_iterations: 2000
  seed: 3
weights:
  cost: 2
  comfort: 1
  deadline: 1
  budget: 1
constraints:
  deadline_hard: true
  circuit_limit_kw: 11.5
household:
  pricing:
    preset: "summer"
  appliances:
    - id: "washer"
      power_kw: 1.5
      duration_slots: 2
      earliest_start: 0
      deadline: 23
  ev:
    required_kwh: 10
    max_rate_kw: 7.2
    plug_in: 20
    ready_by: 23
  budget_state:
    monthly_allowance_kwh: 450
    days_remaining: 15
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.MaxIterations != 2000 || cfg.Planner.Seed != 3 {
		t.Errorf("planner config = %+v", cfg.Planner)
	}
	if cfg.Planner.NoImproveLimit == 0 || cfg.Planner.Cooling == 0 {
		t.Error("planner defaults not applied")
	}
	if cfg.Weights.Cost != 2 {
		t.Errorf("cost weight = %v, want 2", cfg.Weights.Cost)
	}
	if !cfg.Constraints.DeadlineHard || cfg.Constraints.CircuitLimitKW != 11.5 {
		t.Errorf("constraints = %+v", cfg.Constraints)
	}
	if cfg.Budget.ToleranceKWh != 0.5 {
		t.Errorf("budget tolerance = %v, want the 0.5 default", cfg.Budget.ToleranceKWh)
	}

	in, err := cfg.Household.ToInput()
	if err != nil {
		t.Fatalf("to input: %v", err)
	}
	if len(in.Appliances) != 1 || in.Appliances[0].ID != "washer" {
		t.Errorf("appliances = %+v", in.Appliances)
	}
	if in.EV == nil || in.EV.RequiredKWh != 10 {
		t.Errorf("ev = %+v", in.EV)
	}
	if in.Budget.MonthlyAllowanceKWh != 450 || in.Budget.DaysRemaining != 15 {
		t.Errorf("budget = %+v", in.Budget)
	}
	if in.Horizon() != 24 {
		t.Errorf("horizon = %d, want 24", in.Horizon())
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `planner:
  seed: 3
`)
	t.Setenv("HEMS_PLANNER__SEED", "9")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.Seed != 9 {
		t.Errorf("seed = %d, want the environment override 9", cfg.Planner.Seed)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"planner": {"seed": 5}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.Seed != 5 {
		t.Errorf("seed = %d, want 5", cfg.Planner.Seed)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := writeConfig(t, "config.yaml", `household:
  pricing:
    preset: "nuclear"
`)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for unknown pricing preset")
	}

	negative := writeConfig(t, "neg.yaml", `weights:
  cost: -1
`)
	if _, err := Load(negative); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestHouseholdDefaults(t *testing.T) {
	var h HouseholdConfig
	h.SetDefaults()
	if h.Pricing.Preset != "standard" {
		t.Errorf("preset = %q, want standard", h.Pricing.Preset)
	}
	if len(h.Appliances) != 2 {
		t.Fatalf("got %d default appliances, want 2", len(h.Appliances))
	}
	in, err := h.ToInput()
	if err != nil {
		t.Fatalf("default household must build a valid input: %v", err)
	}
	if in.EV != nil {
		t.Error("default household has no EV")
	}
}

func TestToInputRejectsDuplicateApplianceIDs(t *testing.T) {
	var h HouseholdConfig
	h.SetDefaults()
	h.Appliances = []ApplianceConfig{
		{ID: "washer", PowerKW: 1.5, DurationSlots: 2, Deadline: 23},
		{ID: "washer", PowerKW: 2.0, DurationSlots: 3, Deadline: 21},
	}
	_, err := h.ToInput()
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if !strings.Contains(verr.Error(), "duplicate appliance id") {
		t.Fatalf("unexpected error: %v", verr)
	}
}
