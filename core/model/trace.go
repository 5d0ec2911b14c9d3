package model

// FactorKind names a decision factor recorded in the trace.
type FactorKind int

const (
	FactorPrice FactorKind = iota
	FactorComfort
	FactorDeadline
	FactorBudget
)

// String returns the factor's name.
func (k FactorKind) String() string {
	switch k {
	case FactorPrice:
		return "price"
	case FactorComfort:
		return "comfort"
	case FactorDeadline:
		return "deadline"
	case FactorBudget:
		return "budget"
	default:
		return "unknown"
	}
}

// Factor is one contribution to a fixed decision, signed so the largest
// magnitude identifies the dominant influence.
type Factor struct {
	Kind         FactorKind `json:"kind"`
	Contribution float64    `json:"contribution"`
}

// TraceEntry records why one action was fixed: the action's marginal
// reward terms (schedule terms with the action minus terms with it
// removed; negative means the action lowers that penalty), plus the
// context figures the explanation layer renders.
type TraceEntry struct {
	Slot   TimeSlot `json:"slot"`
	Action Action   `json:"action"`

	CostTerm     float64 `json:"cost_term"`
	ComfortTerm  float64 `json:"comfort_term"`
	DeadlineTerm float64 `json:"deadline_term"`
	BudgetTerm   float64 `json:"budget_term"`

	Factors []Factor `json:"factors"` // ordered, largest magnitude first

	PriceTier      Tier    `json:"price_tier"`
	ComfortMargin  float64 `json:"comfort_margin"`
	BudgetHeadroom float64 `json:"budget_headroom"`
	SlackSlots     int     `json:"slack_slots"`
	PeakWindow     Window  `json:"peak_window"`
	HasPeakWindow  bool    `json:"has_peak_window"`
}

// Dominant returns the factor with the largest absolute contribution.
func (e TraceEntry) Dominant() Factor {
	if len(e.Factors) == 0 {
		return Factor{Kind: FactorPrice}
	}
	return e.Factors[0]
}

// DecisionTrace is the ordered record of every fixed action in a plan.
// It is appended to during search and immutable once the schedule is
// finalized.
type DecisionTrace struct {
	PlanID  string       `json:"plan_id"`
	Entries []TraceEntry `json:"entries"`
}
