package model

import "fmt"

// ValidationError reports an internally inconsistent input value. It is
// raised at construction time, never during search.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ViolationKind classifies a constraint violation.
type ViolationKind int

const (
	ViolationDeadline ViolationKind = iota
	ViolationEarliestStart
	ViolationComfort
	ViolationBudget
	ViolationCircuit
	ViolationEVUnderCharge
)

// String returns a human-readable name for the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case ViolationDeadline:
		return "deadline"
	case ViolationEarliestStart:
		return "earliest_start"
	case ViolationComfort:
		return "comfort"
	case ViolationBudget:
		return "budget"
	case ViolationCircuit:
		return "circuit"
	case ViolationEVUnderCharge:
		return "ev_undercharge"
	default:
		return "unknown"
	}
}

// Violation describes one broken constraint in a candidate schedule.
type Violation struct {
	Kind        ViolationKind `json:"kind"`
	ApplianceID string        `json:"appliance_id,omitempty"`
	Slot        TimeSlot      `json:"slot"`
	Detail      string        `json:"detail"`
}

func (v Violation) String() string {
	if v.ApplianceID != "" {
		return fmt.Sprintf("%s violation for %s at slot %d: %s", v.Kind, v.ApplianceID, v.Slot, v.Detail)
	}
	return fmt.Sprintf("%s violation at slot %d: %s", v.Kind, v.Slot, v.Detail)
}
