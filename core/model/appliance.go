package model

// Appliance is a deferrable household load. It is created from input data
// each planning cycle and never mutated by the planner; assignments
// reference it by ID.
type Appliance struct {
	ID            string   `json:"id"`
	PowerKW       float64  `json:"power_kw"`
	DurationSlots int      `json:"duration_slots"`
	EarliestStart TimeSlot `json:"earliest_start"`
	Deadline      TimeSlot `json:"deadline"` // last slot in which it may still run
	Interruptible bool     `json:"interruptible"`

	// CarriedOver marks an appliance re-submitted after missing its
	// deadline in a previous cycle.
	CarriedOver bool `json:"carried_over,omitempty"`
}

// NewAppliance validates and returns an appliance definition. A deadline
// too tight for the duration is not a validation error: that is an
// infeasibility the planner must surface, not malformed input.
func NewAppliance(id string, powerKW float64, durationSlots int, earliestStart, deadline TimeSlot) (Appliance, error) {
	if id == "" {
		return Appliance{}, validationErrorf("appliance", "empty id")
	}
	if powerKW <= 0 {
		return Appliance{}, validationErrorf("appliance", "%s: power must be positive, got %.3f", id, powerKW)
	}
	if durationSlots <= 0 {
		return Appliance{}, validationErrorf("appliance", "%s: duration must be positive, got %d", id, durationSlots)
	}
	if earliestStart < 0 {
		return Appliance{}, validationErrorf("appliance", "%s: negative earliest start %d", id, earliestStart)
	}
	if deadline < earliestStart {
		return Appliance{}, validationErrorf("appliance", "%s: deadline %d before earliest start %d", id, deadline, earliestStart)
	}
	return Appliance{
		ID:            id,
		PowerKW:       powerKW,
		DurationSlots: durationSlots,
		EarliestStart: earliestStart,
		Deadline:      deadline,
	}, nil
}

// LatestStart returns the last slot at which the appliance can start and
// still complete by its deadline.
func (a Appliance) LatestStart() TimeSlot {
	return a.Deadline - TimeSlot(a.DurationSlots) + 1
}

// Slack returns the scheduling margin in slots. Negative slack means no
// feasible window exists.
func (a Appliance) Slack() int {
	return int(a.Deadline-a.EarliestStart) + 1 - a.DurationSlots
}

// EnergyKWh returns the total energy the appliance consumes over a full run.
func (a Appliance) EnergyKWh() float64 {
	return a.PowerKW * float64(a.DurationSlots)
}
