package config

import (
	"fmt"

	"github.com/kilianp07/hems/connectors/tariff"
	"github.com/kilianp07/hems/core/model"
)

// HouseholdConfig describes the planning input: tariff, appliances, HVAC,
// optional EV and the monthly budget. The calling layer owns the file
// format; the core only sees the model.Input built from it.
type HouseholdConfig struct {
	Pricing    PricingConfig     `json:"pricing"`
	Appliances []ApplianceConfig `json:"appliances"`
	HVAC       HVACConfig        `json:"hvac"`
	EV         *EVConfig         `json:"ev,omitempty"`
	Budget     BudgetStateConfig `json:"budget_state"`
}

// PricingConfig selects a TOU preset, supplies an explicit series, or
// points at a day-ahead tariff endpoint. The remote source takes
// precedence when set; the preset remains the fallback if the fetch
// fails.
type PricingConfig struct {
	Preset string         `json:"preset"` // standard, summer or winter
	Prices []float64      `json:"prices,omitempty"`
	Remote *tariff.Config `json:"remote,omitempty"`
}

// ApplianceConfig mirrors model.Appliance for file input.
type ApplianceConfig struct {
	ID            string  `json:"id"`
	PowerKW       float64 `json:"power_kw"`
	DurationSlots int     `json:"duration_slots"`
	EarliestStart int     `json:"earliest_start"`
	Deadline      int     `json:"deadline"`
	Interruptible bool    `json:"interruptible"`
}

// HVACConfig mirrors model.HVACProfile with a uniform comfort band.
type HVACConfig struct {
	ComfortMin      float64 `json:"comfort_min"`
	ComfortMax      float64 `json:"comfort_max"`
	CurrentSetpoint float64 `json:"current_setpoint"`
	OutdoorTemp     float64 `json:"outdoor_temp"`
	DegreeKWh       float64 `json:"degree_kwh"`
	InertiaKWh      float64 `json:"inertia_kwh"`
}

// EVConfig mirrors model.EVProfile.
type EVConfig struct {
	RequiredKWh float64 `json:"required_kwh"`
	MaxRateKW   float64 `json:"max_rate_kw"`
	PlugIn      int     `json:"plug_in"`
	ReadyBy     int     `json:"ready_by"`
}

// BudgetStateConfig mirrors model.BudgetState.
type BudgetStateConfig struct {
	MonthlyAllowanceKWh float64 `json:"monthly_allowance_kwh"`
	CumulativeUsageKWh  float64 `json:"cumulative_usage_kwh"`
	DaysRemaining       int     `json:"days_remaining"`
}

// SetDefaults fills in the reference household: the standard tariff, the
// usual three deferrable loads and a 600 kWh month.
func (c *HouseholdConfig) SetDefaults() {
	if c.Pricing.Preset == "" && len(c.Pricing.Prices) == 0 {
		c.Pricing.Preset = "standard"
	}
	if len(c.Appliances) == 0 {
		c.Appliances = []ApplianceConfig{
			{ID: "dishwasher", PowerKW: 1.2, DurationSlots: 2, EarliestStart: 0, Deadline: 23},
			{ID: "washer-dryer", PowerKW: 2.0, DurationSlots: 3, EarliestStart: 0, Deadline: 21},
		}
	}
	if c.HVAC == (HVACConfig{}) {
		c.HVAC = HVACConfig{
			ComfortMin:      68,
			ComfortMax:      76,
			CurrentSetpoint: 72,
			OutdoorTemp:     85,
			DegreeKWh:       0.25,
			InertiaKWh:      0.1,
		}
	}
	if c.Budget == (BudgetStateConfig{}) {
		c.Budget = BudgetStateConfig{MonthlyAllowanceKWh: 600, DaysRemaining: 30}
	}
}

// Validate checks the pricing selection; the model constructors validate
// everything else when ToInput runs.
func (c HouseholdConfig) Validate() error {
	switch c.Pricing.Preset {
	case "", "standard", "summer", "winter":
	default:
		return fmt.Errorf("unknown pricing preset %q", c.Pricing.Preset)
	}
	return nil
}

// ToInput builds the validated planning input from the configuration.
func (c HouseholdConfig) ToInput() (*model.Input, error) {
	prices, err := c.prices()
	if err != nil {
		return nil, err
	}
	apps := make([]model.Appliance, 0, len(c.Appliances))
	seen := make(map[string]struct{}, len(c.Appliances))
	for _, a := range c.Appliances {
		if _, dup := seen[a.ID]; dup {
			return nil, &model.ValidationError{Field: "appliances", Reason: "duplicate appliance id " + a.ID}
		}
		seen[a.ID] = struct{}{}
		app, err := model.NewAppliance(a.ID, a.PowerKW, a.DurationSlots,
			model.TimeSlot(a.EarliestStart), model.TimeSlot(a.Deadline))
		if err != nil {
			return nil, err
		}
		app.Interruptible = a.Interruptible
		apps = append(apps, app)
	}
	hvac, err := model.NewUniformHVACProfile(prices.Horizon(),
		model.ComfortBand{Min: c.HVAC.ComfortMin, Max: c.HVAC.ComfortMax},
		c.HVAC.CurrentSetpoint, c.HVAC.OutdoorTemp, c.HVAC.DegreeKWh, c.HVAC.InertiaKWh)
	if err != nil {
		return nil, err
	}
	var ev *model.EVProfile
	if c.EV != nil {
		profile, err := model.NewEVProfile(c.EV.RequiredKWh, c.EV.MaxRateKW,
			model.TimeSlot(c.EV.PlugIn), model.TimeSlot(c.EV.ReadyBy))
		if err != nil {
			return nil, err
		}
		ev = &profile
	}
	budget, err := model.NewBudgetState(c.Budget.MonthlyAllowanceKWh,
		c.Budget.CumulativeUsageKWh, c.Budget.DaysRemaining)
	if err != nil {
		return nil, err
	}
	return &model.Input{Prices: prices, Appliances: apps, HVAC: hvac, EV: ev, Budget: budget}, nil
}

func (c HouseholdConfig) prices() (model.PriceSchedule, error) {
	if len(c.Pricing.Prices) > 0 {
		return model.NewPriceSchedule(c.Pricing.Prices)
	}
	switch c.Pricing.Preset {
	case "summer":
		return model.SummerTOU(), nil
	case "winter":
		return model.WinterTOU(), nil
	default:
		return model.StandardTOU(), nil
	}
}
