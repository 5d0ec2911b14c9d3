package model

import "math"

// ComfortBand is the acceptable temperature range at one slot.
type ComfortBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether the setpoint lies inside the band.
func (b ComfortBand) Contains(setpoint float64) bool {
	return setpoint >= b.Min && setpoint <= b.Max
}

// Deviation returns how far the setpoint sits outside the band, zero when
// in-band.
func (b ComfortBand) Deviation(setpoint float64) float64 {
	switch {
	case setpoint < b.Min:
		return b.Min - setpoint
	case setpoint > b.Max:
		return setpoint - b.Max
	default:
		return 0
	}
}

// HVACProfile models the conditioning system: the per-slot comfort band,
// the setpoint carried in from the previous cycle and the parameters used
// to estimate conditioning energy. Cooling is assumed: each degree of
// setpoint below the outdoor temperature costs DegreeKWh per slot, and a
// setpoint change costs InertiaKWh per degree moved.
type HVACProfile struct {
	Bands           []ComfortBand `json:"bands"`
	CurrentSetpoint float64       `json:"current_setpoint"`
	OutdoorTemp     float64       `json:"outdoor_temp"`
	DegreeKWh       float64       `json:"degree_kwh"`
	InertiaKWh      float64       `json:"inertia_kwh"`
}

// NewHVACProfile validates the comfort bands against the horizon length.
func NewHVACProfile(bands []ComfortBand, currentSetpoint, outdoorTemp, degreeKWh, inertiaKWh float64) (HVACProfile, error) {
	if len(bands) == 0 {
		return HVACProfile{}, validationErrorf("hvac_profile", "no comfort bands")
	}
	for i, b := range bands {
		if b.Min >= b.Max {
			return HVACProfile{}, validationErrorf("hvac_profile", "inverted comfort band [%.1f, %.1f] at slot %d", b.Min, b.Max, i)
		}
	}
	if degreeKWh < 0 || inertiaKWh < 0 {
		return HVACProfile{}, validationErrorf("hvac_profile", "negative energy coefficients")
	}
	cp := make([]ComfortBand, len(bands))
	copy(cp, bands)
	return HVACProfile{
		Bands:           cp,
		CurrentSetpoint: currentSetpoint,
		OutdoorTemp:     outdoorTemp,
		DegreeKWh:       degreeKWh,
		InertiaKWh:      inertiaKWh,
	}, nil
}

// NewUniformHVACProfile builds a profile with the same comfort band in
// every slot of the horizon.
func NewUniformHVACProfile(horizon int, band ComfortBand, currentSetpoint, outdoorTemp, degreeKWh, inertiaKWh float64) (HVACProfile, error) {
	if horizon <= 0 {
		return HVACProfile{}, validationErrorf("hvac_profile", "non-positive horizon %d", horizon)
	}
	bands := make([]ComfortBand, horizon)
	for i := range bands {
		bands[i] = band
	}
	return NewHVACProfile(bands, currentSetpoint, outdoorTemp, degreeKWh, inertiaKWh)
}

// Band returns the comfort band for the slot.
func (h HVACProfile) Band(t TimeSlot) ComfortBand {
	return h.Bands[int(t)%len(h.Bands)]
}

// SlotEnergy estimates the conditioning energy for one slot given the
// setpoint held during it and the setpoint of the previous slot.
func (h HVACProfile) SlotEnergy(setpoint, previous float64) float64 {
	cooling := h.OutdoorTemp - setpoint
	if cooling < 0 {
		cooling = 0
	}
	return h.DegreeKWh*cooling + h.InertiaKWh*math.Abs(setpoint-previous)
}
