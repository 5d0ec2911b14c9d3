package model

import "fmt"

// ActionType enumerates the discrete decisions available at a slot.
type ActionType int

const (
	ActionNoOp ActionType = iota
	ActionStartAppliance
	ActionStopAppliance
	ActionSetHVAC
	ActionChargeEV
)

// String returns a human-readable name for the action type.
func (t ActionType) String() string {
	switch t {
	case ActionNoOp:
		return "no-op"
	case ActionStartAppliance:
		return "start_appliance"
	case ActionStopAppliance:
		return "stop_appliance"
	case ActionSetHVAC:
		return "set_hvac"
	case ActionChargeEV:
		return "charge_ev"
	default:
		return "unknown"
	}
}

// Action is one discrete decision taken at a slot. Immutable value; the
// meaning of Setpoint and RateKW depends on Type.
type Action struct {
	Type        ActionType `json:"type"`
	ApplianceID string     `json:"appliance_id,omitempty"`
	Setpoint    float64    `json:"setpoint,omitempty"`
	RateKW      float64    `json:"rate_kw,omitempty"`
}

// NoOp returns the idle action.
func NoOp() Action { return Action{Type: ActionNoOp} }

// StartAppliance returns a start action for the given appliance.
func StartAppliance(id string) Action {
	return Action{Type: ActionStartAppliance, ApplianceID: id}
}

// StopAppliance returns a stop action for an interruptible appliance.
func StopAppliance(id string) Action {
	return Action{Type: ActionStopAppliance, ApplianceID: id}
}

// SetHVAC returns an action moving the HVAC setpoint from this slot on.
func SetHVAC(setpoint float64) Action {
	return Action{Type: ActionSetHVAC, Setpoint: setpoint}
}

// ChargeEV returns a charging action at the given rate for this slot.
func ChargeEV(rateKW float64) Action {
	return Action{Type: ActionChargeEV, RateKW: rateKW}
}

func (a Action) String() string {
	switch a.Type {
	case ActionStartAppliance, ActionStopAppliance:
		return fmt.Sprintf("%s(%s)", a.Type, a.ApplianceID)
	case ActionSetHVAC:
		return fmt.Sprintf("set_hvac(%.1f)", a.Setpoint)
	case ActionChargeEV:
		return fmt.Sprintf("charge_ev(%.1fkW)", a.RateKW)
	default:
		return a.Type.String()
	}
}
