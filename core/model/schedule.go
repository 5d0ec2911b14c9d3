package model

// Input bundles the data a planning cycle operates on. Each cycle receives
// its own Input; nothing in it is shared mutable state.
type Input struct {
	Prices     PriceSchedule `json:"prices"`
	Appliances []Appliance   `json:"appliances"`
	HVAC       HVACProfile   `json:"hvac"`
	EV         *EVProfile    `json:"ev,omitempty"`
	Budget     BudgetState   `json:"budget"`
}

// Horizon returns the number of slots in the planning horizon.
func (in *Input) Horizon() int { return in.Prices.Horizon() }

// Appliance looks up an appliance definition by ID.
func (in *Input) Appliance(id string) (Appliance, bool) {
	for _, a := range in.Appliances {
		if a.ID == id {
			return a, true
		}
	}
	return Appliance{}, false
}

// Schedule is a complete 24-slot action plan: exactly one Action per slot.
// It is owned exclusively by the planner during search and read-only for
// everyone afterwards.
type Schedule struct {
	PlanID  string   `json:"plan_id"`
	Input   *Input   `json:"-"`
	Actions []Action `json:"actions"`
}

// NewSchedule returns an all-no-op schedule over the input's horizon.
func NewSchedule(planID string, in *Input) *Schedule {
	actions := make([]Action, in.Horizon())
	for i := range actions {
		actions[i] = NoOp()
	}
	return &Schedule{PlanID: planID, Input: in, Actions: actions}
}

// Clone returns a deep copy sharing the same immutable Input.
func (s *Schedule) Clone() *Schedule {
	actions := make([]Action, len(s.Actions))
	copy(actions, s.Actions)
	return &Schedule{PlanID: s.PlanID, Input: s.Input, Actions: actions}
}

// StartSlot returns the slot at which the appliance is started, if any.
func (s *Schedule) StartSlot(applianceID string) (TimeSlot, bool) {
	for i, a := range s.Actions {
		if a.Type == ActionStartAppliance && a.ApplianceID == applianceID {
			return TimeSlot(i), true
		}
	}
	return 0, false
}

// stopSlot returns the slot of an explicit stop action after from, if any.
func (s *Schedule) stopSlot(applianceID string, from TimeSlot) (TimeSlot, bool) {
	for i := int(from) + 1; i < len(s.Actions); i++ {
		a := s.Actions[i]
		if a.Type == ActionStopAppliance && a.ApplianceID == applianceID {
			return TimeSlot(i), true
		}
	}
	return 0, false
}

// RunWindow returns the slots during which the appliance runs. The second
// return value is false when the appliance is never started.
func (s *Schedule) RunWindow(app Appliance) (Window, bool) {
	start, ok := s.StartSlot(app.ID)
	if !ok {
		return Window{}, false
	}
	end := start + TimeSlot(app.DurationSlots) - 1
	if stop, ok := s.stopSlot(app.ID, start); ok && app.Interruptible && stop-1 < end {
		end = stop - 1
	}
	if int(end) >= len(s.Actions) {
		end = TimeSlot(len(s.Actions) - 1)
	}
	return Window{From: start, To: end}, true
}

// Completes reports whether the appliance's full duration fits inside its
// run window and finishes by its deadline.
func (s *Schedule) Completes(app Appliance) bool {
	w, ok := s.RunWindow(app)
	if !ok {
		return false
	}
	ran := int(w.To-w.From) + 1
	return ran >= app.DurationSlots && w.To <= app.Deadline
}

// MissedAppliances returns the appliances that do not complete by their
// deadline under this schedule, in input order.
func (s *Schedule) MissedAppliances() []Appliance {
	var missed []Appliance
	for _, a := range s.Input.Appliances {
		if !s.Completes(a) {
			missed = append(missed, a)
		}
	}
	return missed
}

// Setpoints folds the set_hvac actions into the per-slot setpoint series,
// starting from the profile's current setpoint.
func (s *Schedule) Setpoints() []float64 {
	sp := make([]float64, len(s.Actions))
	cur := s.Input.HVAC.CurrentSetpoint
	for i, a := range s.Actions {
		if a.Type == ActionSetHVAC {
			cur = a.Setpoint
		}
		sp[i] = cur
	}
	return sp
}

// EVRates returns the per-slot EV charging rates in kW.
func (s *Schedule) EVRates() []float64 {
	rates := make([]float64, len(s.Actions))
	for i, a := range s.Actions {
		if a.Type == ActionChargeEV {
			rates[i] = a.RateKW
		}
	}
	return rates
}

// EVDeliveredKWh returns the total EV energy the schedule delivers.
func (s *Schedule) EVDeliveredKWh() float64 {
	var total float64
	for _, r := range s.EVRates() {
		total += r
	}
	return total
}

// AppliancePowerAt returns the combined draw of appliances running in the
// slot, and separately the draw of non-interruptible ones for circuit
// checks.
func (s *Schedule) AppliancePowerAt(t TimeSlot) (total, fixed float64) {
	for _, a := range s.Input.Appliances {
		w, ok := s.RunWindow(a)
		if !ok || !w.Contains(t) {
			continue
		}
		total += a.PowerKW
		if !a.Interruptible {
			fixed += a.PowerKW
		}
	}
	return total, fixed
}

// EnergyBySlot returns the full per-slot energy series: appliances, HVAC
// conditioning and EV charging.
func (s *Schedule) EnergyBySlot() []float64 {
	energy := make([]float64, len(s.Actions))
	setpoints := s.Setpoints()
	rates := s.EVRates()
	prev := s.Input.HVAC.CurrentSetpoint
	for i := range s.Actions {
		appl, _ := s.AppliancePowerAt(TimeSlot(i))
		energy[i] = appl + s.Input.HVAC.SlotEnergy(setpoints[i], prev) + rates[i]
		prev = setpoints[i]
	}
	return energy
}

// TotalEnergyKWh returns the day's total energy use.
func (s *Schedule) TotalEnergyKWh() float64 {
	var total float64
	for _, e := range s.EnergyBySlot() {
		total += e
	}
	return total
}

// TotalCost returns the day's energy bill under the input prices.
func (s *Schedule) TotalCost() float64 {
	var total float64
	for i, e := range s.EnergyBySlot() {
		total += e * s.Input.Prices.At(TimeSlot(i))
	}
	return total
}
