// Package app wires the planning core together from configuration: budget
// and constraint controllers, reward model, planner, metrics sinks and
// the phase event bus.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/hems/config"
	"github.com/kilianp07/hems/connectors/tariff"
	"github.com/kilianp07/hems/core/budget"
	"github.com/kilianp07/hems/core/constraint"
	"github.com/kilianp07/hems/core/explain"
	corehistory "github.com/kilianp07/hems/core/history"
	coremetrics "github.com/kilianp07/hems/core/metrics"
	"github.com/kilianp07/hems/core/model"
	"github.com/kilianp07/hems/core/monitoring"
	"github.com/kilianp07/hems/core/planner"
	"github.com/kilianp07/hems/core/reward"
	infrahistory "github.com/kilianp07/hems/infra/history"
	"github.com/kilianp07/hems/infra/logger"
	"github.com/kilianp07/hems/infra/metrics"
	inframon "github.com/kilianp07/hems/infra/monitoring"
	"github.com/kilianp07/hems/internal/eventbus"
)

// Service runs planning cycles for one household.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	plan    *planner.Planner
	budget  budget.Controller
	sink    coremetrics.Sink
	bus     *eventbus.Bus
	events  <-chan eventbus.Event
	tariffs *tariff.Client
	history corehistory.Store
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	monitor, err := inframon.NewSentryMonitor(cfg.Monitoring)
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}
	monitoring.Init(monitor)

	budgetCtl := budget.Controller{ToleranceKWh: cfg.Budget.ToleranceKWh}
	constraints := constraint.New(cfg.Constraints, budgetCtl)
	rewards, err := reward.New(cfg.Weights, budgetCtl)
	if err != nil {
		return nil, fmt.Errorf("reward model: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		go func() {
			if err := metrics.StartPromServer(cfg.Metrics.PrometheusPort); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics, logger.New("influx-sink")))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	pl, err := planner.New(cfg.Planner, constraints, rewards, logger.New("planner"))
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	bus := eventbus.New()
	pl.SetEventBus(bus)
	pl.SetMetricsSink(sink)

	var store corehistory.Store = corehistory.NopStore{}
	if cfg.History.Path != "" {
		store, err = infrahistory.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
	}

	var tariffs *tariff.Client
	if cfg.Household.Pricing.Remote != nil {
		tariffs = tariff.New(*cfg.Household.Pricing.Remote)
	}

	svc := &Service{
		cfg:     cfg,
		log:     logg,
		plan:    pl,
		budget:  budgetCtl,
		sink:    sink,
		bus:     bus,
		events:  bus.Subscribe(),
		tariffs: tariffs,
		history: store,
	}
	go svc.logPhases()
	return svc, nil
}

func (s *Service) logPhases() {
	defer monitoring.Recover()
	for ev := range s.events {
		if pe, ok := ev.(planner.PhaseEvent); ok {
			s.log.Debugw("search phase", map[string]any{
				"plan_id":   pe.PlanID,
				"phase":     pe.Phase.String(),
				"iteration": pe.Iteration,
			})
		}
	}
}

// Close releases the event bus, the history store and any buffered
// monitoring events.
func (s *Service) Close() error {
	s.bus.Close()
	monitoring.Flush(2 * time.Second)
	return s.history.Close()
}

// DayPlan is the caller-facing outcome of one planning cycle.
type DayPlan struct {
	Result     *planner.Result     `json:"result"`
	Rationales []explain.Rationale `json:"rationales"`
	Savings    planner.Savings     `json:"savings"`
}

// PlanDay runs one planning cycle on the configured household. An
// infeasible horizon still yields the least-bad plan; the error travels
// alongside so callers can decide what to relax.
func (s *Service) PlanDay(ctx context.Context) (*DayPlan, error) {
	in, err := s.cfg.Household.ToInput()
	if err != nil {
		return nil, fmt.Errorf("household input: %w", err)
	}
	if s.tariffs != nil {
		prices, err := s.tariffs.DayAhead(ctx, time.Now().AddDate(0, 0, 1))
		if err != nil {
			s.log.Warnf("day-ahead tariff unavailable, using configured prices: %v", err)
			monitoring.Capture(err, map[string]string{"source": "tariff"})
		} else {
			in.Prices = prices
		}
	}
	return s.planInput(ctx, in)
}

func (s *Service) planInput(ctx context.Context, in *model.Input) (*DayPlan, error) {
	res, err := s.plan.Plan(ctx, in)
	if res == nil {
		return nil, err
	}
	baseline := planner.BaselinePlan(res.Schedule.PlanID+"-baseline", in)
	plan := &DayPlan{
		Result:     res,
		Rationales: explain.Explain(res.Trace),
		Savings:    planner.ComputeSavings(baseline, res.Schedule),
	}
	return plan, err
}

// DaySummary reports one simulated day of the rolling horizon.
type DaySummary struct {
	Day        int               `json:"day"`
	CostTerm   float64           `json:"cost"`
	EnergyKWh  float64           `json:"energy_kwh"`
	Feasible   bool              `json:"feasible"`
	OverBudget bool              `json:"over_budget"`
	Savings    planner.Savings   `json:"savings"`
	Carryovers []model.Appliance `json:"carryovers,omitempty"`
}

// Simulate replans day by day, applying realized usage to the budget and
// re-submitting missed appliances, for the given number of days.
func (s *Service) Simulate(ctx context.Context, days int) ([]DaySummary, error) {
	base, err := s.cfg.Household.ToInput()
	if err != nil {
		return nil, fmt.Errorf("household input: %w", err)
	}
	state := base.Budget
	var carryovers []model.Appliance
	summaries := make([]DaySummary, 0, days)

	for day := 1; day <= days; day++ {
		in := *base
		in.Budget = state
		in.Appliances = append(carryovers, base.Appliances...)

		plan, err := s.planInput(ctx, &in)
		if err != nil {
			var infeasible *planner.InfeasibleHorizonError
			if !errors.As(err, &infeasible) {
				monitoring.Capture(err, map[string]string{"stage": "simulate"})
				return summaries, fmt.Errorf("day %d: %w", day, err)
			}
			s.log.Warnf("day %d infeasible: %v", day, err)
		}
		sched := plan.Result.Schedule
		used := sched.TotalEnergyKWh()
		allowance := s.budget.DailyAllowance(state)
		state = s.budget.ApplyUsage(state, used)
		if recErr := s.sink.RecordBudget(coremetrics.BudgetEvent{
			CumulativeUsageKWh: state.CumulativeUsageKWh,
			AllowanceKWh:       allowance,
			DaysRemaining:      state.DaysRemaining,
			OverBudget:         state.OverBudget,
			Time:               time.Now(),
		}); recErr != nil {
			s.log.Errorf("record budget metrics: %v", recErr)
		}
		carryovers = planner.Carryovers(sched)
		if histErr := s.history.Add(corehistory.Record{
			Date:       time.Now().AddDate(0, 0, day-1),
			CostTerm:   plan.Result.Reward.CostTerm,
			EnergyKWh:  used,
			SavingsPct: plan.Savings.Percent,
			Feasible:   plan.Result.Feasible,
			OverBudget: state.OverBudget,
			Carryovers: len(carryovers),
		}); histErr != nil {
			s.log.Errorf("record plan history: %v", histErr)
		}
		summaries = append(summaries, DaySummary{
			Day:        day,
			CostTerm:   plan.Result.Reward.CostTerm,
			EnergyKWh:  used,
			Feasible:   plan.Result.Feasible,
			OverBudget: state.OverBudget,
			Savings:    plan.Savings,
			Carryovers: carryovers,
		})
		if state.DaysRemaining == 0 {
			break
		}
	}
	return summaries, nil
}
