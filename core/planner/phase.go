package planner

// Phase identifies the state of the search state machine.
type Phase int

const (
	PhaseSeeding Phase = iota
	PhaseExploring
	PhaseConverged
	PhaseBudgetExhausted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSeeding:
		return "seeding"
	case PhaseExploring:
		return "exploring"
	case PhaseConverged:
		return "converged"
	case PhaseBudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// PhaseEvent is published on the event bus at every phase transition.
type PhaseEvent struct {
	PlanID    string
	Phase     Phase
	Iteration int
}
