package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/hems/core/model"
)

type PricingDef struct {
	Preset string    `yaml:"preset,omitempty"`
	Prices []float64 `yaml:"prices,omitempty"`
}

func (p PricingDef) ToModel() (model.PriceSchedule, error) {
	if len(p.Prices) > 0 {
		return model.NewPriceSchedule(p.Prices)
	}
	switch p.Preset {
	case "", "standard":
		return model.StandardTOU(), nil
	case "summer":
		return model.SummerTOU(), nil
	case "winter":
		return model.WinterTOU(), nil
	default:
		return model.PriceSchedule{}, fmt.Errorf("unknown pricing preset %q", p.Preset)
	}
}

type ApplianceDef struct {
	ID            string  `yaml:"id"`
	PowerKW       float64 `yaml:"power_kw"`
	DurationSlots int     `yaml:"duration_slots"`
	EarliestStart int     `yaml:"earliest_start"`
	Deadline      int     `yaml:"deadline"`
	Interruptible bool    `yaml:"interruptible,omitempty"`
}

func (a ApplianceDef) ToModel() (model.Appliance, error) {
	app, err := model.NewAppliance(a.ID, a.PowerKW, a.DurationSlots,
		model.TimeSlot(a.EarliestStart), model.TimeSlot(a.Deadline))
	if err != nil {
		return model.Appliance{}, err
	}
	app.Interruptible = a.Interruptible
	return app, nil
}

type HVACDef struct {
	MinF       float64 `yaml:"min_f"`
	MaxF       float64 `yaml:"max_f"`
	Setpoint   float64 `yaml:"setpoint"`
	OutdoorF   float64 `yaml:"outdoor_f"`
	DegreeKWh  float64 `yaml:"degree_kwh"`
	InertiaKWh float64 `yaml:"inertia_kwh"`
}

func (h HVACDef) ToModel(horizon int) (model.HVACProfile, error) {
	band := model.ComfortBand{Min: h.MinF, Max: h.MaxF}
	return model.NewUniformHVACProfile(horizon, band, h.Setpoint, h.OutdoorF, h.DegreeKWh, h.InertiaKWh)
}

type EVDef struct {
	RequiredKWh float64 `yaml:"required_kwh"`
	MaxRateKW   float64 `yaml:"max_rate_kw"`
	PlugIn      int     `yaml:"plug_in"`
	ReadyBy     int     `yaml:"ready_by"`
}

func (e EVDef) ToModel() (model.EVProfile, error) {
	return model.NewEVProfile(e.RequiredKWh, e.MaxRateKW, model.TimeSlot(e.PlugIn), model.TimeSlot(e.ReadyBy))
}

type BudgetDef struct {
	MonthlyAllowanceKWh float64 `yaml:"monthly_allowance_kwh"`
	CumulativeUsageKWh  float64 `yaml:"cumulative_usage_kwh"`
	DaysRemaining       int     `yaml:"days_remaining"`
}

func (b BudgetDef) ToModel() (model.BudgetState, error) {
	return model.NewBudgetState(b.MonthlyAllowanceKWh, b.CumulativeUsageKWh, b.DaysRemaining)
}

type PlacementDef struct {
	Appliance string `yaml:"appliance"`
	Start     int    `yaml:"start"`
}

type Expected struct {
	Feasible   bool           `yaml:"feasible"`
	Placements []PlacementDef `yaml:"placements,omitempty"`
	MaxCost    float64        `yaml:"max_cost,omitempty"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Pricing     PricingDef     `yaml:"pricing"`
	Appliances  []ApplianceDef `yaml:"appliances"`
	HVAC        *HVACDef       `yaml:"hvac,omitempty"`
	EV          *EVDef         `yaml:"ev,omitempty"`
	Budget      BudgetDef      `yaml:"budget"`
	Expected    Expected       `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) ToInput() (*model.Input, error) {
	prices, err := sc.Pricing.ToModel()
	if err != nil {
		return nil, err
	}
	appliances := make([]model.Appliance, 0, len(sc.Appliances))
	for _, def := range sc.Appliances {
		a, err := def.ToModel()
		if err != nil {
			return nil, fmt.Errorf("appliance %s: %w", def.ID, err)
		}
		appliances = append(appliances, a)
	}
	hvacDef := sc.HVAC
	if hvacDef == nil {
		hvacDef = &HVACDef{MinF: 68, MaxF: 76, Setpoint: 72, OutdoorF: 85, DegreeKWh: 0.25, InertiaKWh: 0.1}
	}
	hvac, err := hvacDef.ToModel(prices.Horizon())
	if err != nil {
		return nil, err
	}
	budget, err := sc.Budget.ToModel()
	if err != nil {
		return nil, err
	}
	in := &model.Input{
		Prices:     prices,
		Appliances: appliances,
		HVAC:       hvac,
		Budget:     budget,
	}
	if sc.EV != nil {
		ev, err := sc.EV.ToModel()
		if err != nil {
			return nil, err
		}
		in.EV = &ev
	}
	return in, nil
}
