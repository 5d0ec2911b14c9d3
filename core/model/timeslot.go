package model

// DefaultHorizon is the number of planning slots in a day-ahead horizon.
// One slot per hour; finer granularities simply use a longer price series.
const DefaultHorizon = 24

// TimeSlot indexes a slot within the planning horizon, 0-based.
type TimeSlot int

// Window is an inclusive slot range.
type Window struct {
	From TimeSlot `json:"from"`
	To   TimeSlot `json:"to"`
}

// Contains reports whether the slot falls inside the window.
func (w Window) Contains(t TimeSlot) bool {
	return t >= w.From && t <= w.To
}
