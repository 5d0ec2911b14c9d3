// Package metrics defines the observability events the planning core
// emits and the sink interface adapters implement.
package metrics

import "time"

// PlanEvent summarizes one completed planning cycle.
type PlanEvent struct {
	PlanID      string
	Feasible    bool
	Phase       string
	Iterations  int
	RewardTotal float64
	CostTerm    float64
	EnergyKWh   float64
	Elapsed     time.Duration
	Time        time.Time
}

// BudgetEvent records the budget state after a realized day.
type BudgetEvent struct {
	CumulativeUsageKWh float64
	AllowanceKWh       float64
	DaysRemaining      int
	OverBudget         bool
	Time               time.Time
}

// Sink records planning events for observability purposes.
type Sink interface {
	RecordPlan(ev PlanEvent) error
	RecordBudget(ev BudgetEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error     { return nil }
func (NopSink) RecordBudget(BudgetEvent) error { return nil }

// Config selects which sinks to enable.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
