package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/hems/core/metrics"
)

// PromSink records planning events as Prometheus metrics.
type PromSink struct {
	plans      *prometheus.CounterVec
	iterations prometheus.Histogram
	planCost   prometheus.Histogram
	overBudget prometheus.Counter
}

// NewPromSink registers the planning collectors on the provided
// Registerer. If reg is nil the default registerer is used; collectors
// already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hems_plans_total",
		Help: "Total number of completed planning cycles",
	}, []string{"feasible", "phase"})
	iterations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hems_plan_iterations",
		Help:    "Search iterations spent per planning cycle",
		Buckets: prometheus.ExponentialBuckets(10, 4, 7),
	})
	planCost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hems_plan_cost",
		Help:    "Monetary cost term of the chosen schedule",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
	overBudget := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hems_budget_overruns_total",
		Help: "Days flagged over budget after realized usage",
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(iterations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			iterations = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(planCost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			planCost = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(overBudget); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			overBudget = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	return &PromSink{plans: plans, iterations: iterations, planCost: planCost, overBudget: overBudget}, nil
}

// RecordPlan counts the cycle and observes its iteration and cost figures.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.WithLabelValues(strconv.FormatBool(ev.Feasible), ev.Phase).Inc()
	s.iterations.Observe(float64(ev.Iterations))
	s.planCost.Observe(ev.CostTerm)
	return nil
}

// RecordBudget counts over-budget days.
func (s *PromSink) RecordBudget(ev coremetrics.BudgetEvent) error {
	if ev.OverBudget {
		s.overBudget.Inc()
	}
	return nil
}
