package model

// EVProfile describes an electric-vehicle charging requirement for the
// horizon: how much energy must be delivered, how fast it can flow, and
// the window in which the vehicle is plugged in.
type EVProfile struct {
	RequiredKWh float64  `json:"required_kwh"`
	MaxRateKW   float64  `json:"max_rate_kw"`
	PlugIn      TimeSlot `json:"plug_in"`
	ReadyBy     TimeSlot `json:"ready_by"` // last slot in which charging may occur
}

// NewEVProfile validates an EV charging requirement.
func NewEVProfile(requiredKWh, maxRateKW float64, plugIn, readyBy TimeSlot) (EVProfile, error) {
	if requiredKWh < 0 {
		return EVProfile{}, validationErrorf("ev_profile", "negative required energy %.2f", requiredKWh)
	}
	if maxRateKW <= 0 {
		return EVProfile{}, validationErrorf("ev_profile", "charge rate must be positive, got %.2f", maxRateKW)
	}
	if plugIn < 0 {
		return EVProfile{}, validationErrorf("ev_profile", "negative plug-in slot %d", plugIn)
	}
	if readyBy < plugIn {
		return EVProfile{}, validationErrorf("ev_profile", "ready-by slot %d before plug-in slot %d", readyBy, plugIn)
	}
	return EVProfile{RequiredKWh: requiredKWh, MaxRateKW: maxRateKW, PlugIn: plugIn, ReadyBy: readyBy}, nil
}

// WindowSlots returns the number of slots in the plug-in window.
func (e EVProfile) WindowSlots() int {
	return int(e.ReadyBy-e.PlugIn) + 1
}

// Deliverable reports whether the required energy fits in the window at
// the maximum rate.
func (e EVProfile) Deliverable() bool {
	return e.MaxRateKW*float64(e.WindowSlots()) >= e.RequiredKWh
}
