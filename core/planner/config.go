package planner

import "github.com/kilianp07/hems/core/model"

// Config defines search parameters loaded from configuration.
type Config struct {
	MaxIterations      int     `json:"max_iterations"`
	NoImproveLimit     int     `json:"no_improve_limit"`
	InitialTemperature float64 `json:"initial_temperature"`
	Cooling            float64 `json:"cooling"`
	Seed               int64   `json:"seed"`

	// PeakRelaxDegrees is how far the seed relaxes the HVAC setpoint
	// toward the band edge during peak-priced slots.
	PeakRelaxDegrees float64 `json:"peak_relax_degrees"`
}

// SetDefaults fills in zero values with working defaults.
func (c *Config) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 5000
	}
	if c.NoImproveLimit == 0 {
		c.NoImproveLimit = 500
	}
	if c.InitialTemperature == 0 {
		c.InitialTemperature = 1.0
	}
	if c.Cooling == 0 {
		c.Cooling = 0.995
	}
	if c.PeakRelaxDegrees == 0 {
		c.PeakRelaxDegrees = 2.0
	}
}

// Validate checks the configuration for inconsistent values.
func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return &model.ValidationError{Field: "planner", Reason: "max_iterations must not be negative"}
	}
	if c.NoImproveLimit < 0 {
		return &model.ValidationError{Field: "planner", Reason: "no_improve_limit must not be negative"}
	}
	if c.Cooling < 0 || c.Cooling > 1 {
		return &model.ValidationError{Field: "planner", Reason: "cooling must be in [0, 1]"}
	}
	if c.InitialTemperature < 0 {
		return &model.ValidationError{Field: "planner", Reason: "initial_temperature must not be negative"}
	}
	if c.PeakRelaxDegrees < 0 {
		return &model.ValidationError{Field: "planner", Reason: "peak_relax_degrees must not be negative"}
	}
	return nil
}
