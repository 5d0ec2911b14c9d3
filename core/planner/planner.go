package planner

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/hems/core/constraint"
	"github.com/kilianp07/hems/core/logger"
	"github.com/kilianp07/hems/core/metrics"
	"github.com/kilianp07/hems/core/model"
	"github.com/kilianp07/hems/core/reward"
	"github.com/kilianp07/hems/internal/eventbus"
)

// Result is the outcome of one planning cycle. Schedule and Trace are
// read-only for the caller. Feasible is false when the best schedule
// found still breaks a hard constraint; Violations then lists what broke.
type Result struct {
	Schedule   *model.Schedule     `json:"schedule"`
	Trace      model.DecisionTrace `json:"trace"`
	Reward     reward.Reward       `json:"reward"`
	Feasible   bool                `json:"feasible"`
	Violations []model.Violation   `json:"violations,omitempty"`
	Phase      Phase               `json:"-"`
	Iterations int                 `json:"iterations"`
	Elapsed    time.Duration       `json:"-"`
}

// Planner runs the day-ahead search. It holds no state between cycles:
// everything a cycle needs arrives through Plan's input.
type Planner struct {
	cfg         Config
	constraints constraint.Controller
	rewards     reward.Model
	log         logger.Logger
	bus         eventbus.EventBus
	sink        metrics.Sink
}

// New returns a Planner. A nil logger is replaced with a no-op.
func New(cfg Config, ctrl constraint.Controller, rewards reward.Model, log logger.Logger) (*Planner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Planner{cfg: cfg, constraints: ctrl, rewards: rewards, log: log}, nil
}

// SetEventBus configures the bus on which phase transitions are published.
func (p *Planner) SetEventBus(bus eventbus.EventBus) { p.bus = bus }

// SetMetricsSink configures the sink that records planning outcomes.
func (p *Planner) SetMetricsSink(sink metrics.Sink) { p.sink = sink }

func (p *Planner) publish(ev PhaseEvent) {
	if p.bus != nil {
		p.bus.Publish(ev)
	}
}

// Plan computes the action schedule for one day. The search is bounded by
// the iteration budget and by ctx; it always returns the best schedule
// found. When the best schedule still violates a hard constraint the
// result is returned together with an *InfeasibleHorizonError so the
// caller can decide whether to relax and retry.
func (p *Planner) Plan(ctx context.Context, in *model.Input) (*Result, error) {
	if in == nil || in.Horizon() == 0 {
		return nil, &model.ValidationError{Field: "input", Reason: "missing or empty planning input"}
	}
	// Duplicate IDs would let one start action stand in for several
	// entries and double-count their power.
	seen := make(map[string]struct{}, len(in.Appliances))
	for _, a := range in.Appliances {
		if _, dup := seen[a.ID]; dup {
			return nil, &model.ValidationError{Field: "appliances", Reason: "duplicate appliance id " + a.ID}
		}
		seen[a.ID] = struct{}{}
	}
	planID := uuid.NewString()
	rng := rand.New(rand.NewSource(p.cfg.Seed))
	started := time.Now()

	p.publish(PhaseEvent{PlanID: planID, Phase: PhaseSeeding})
	best := p.seedSchedule(planID, in)
	if ok, deadEnds := p.constraints.HorizonFeasible(best, 0); !ok {
		for _, v := range deadEnds {
			p.log.Warnf("dead end before search: %s", v)
		}
	}

	// When the seed itself breaks a hard constraint no feasible candidate
	// exists; hard checks turn advisory so the search can still chase the
	// least-bad schedule.
	advisory := p.constraints.AllSoft() || !p.constraints.IsFeasible(best)

	bestReward := p.rewards.Score(best, in.Budget)
	cur, curReward := best, bestReward
	temp := p.cfg.InitialTemperature

	phase := PhaseExploring
	p.publish(PhaseEvent{PlanID: planID, Phase: PhaseExploring})

	iter := 0
	noImprove := 0
	for ; iter < p.cfg.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			phase = PhaseBudgetExhausted
		default:
		}
		if phase != PhaseExploring {
			break
		}
		if noImprove >= p.cfg.NoImproveLimit {
			phase = PhaseConverged
			break
		}

		cand, ok := p.neighbor(cur, rng)
		if !ok {
			noImprove++
			continue
		}
		if !advisory && !p.constraints.IsFeasible(cand) {
			// Rejected before scoring; hard violations never compete.
			noImprove++
			temp *= p.cfg.Cooling
			continue
		}
		r := p.rewards.Score(cand, in.Budget)
		delta := r.Total - curReward.Total
		if delta >= 0 || (temp > 0 && rng.Float64() < math.Exp(delta/temp)) {
			cur, curReward = cand, r
			if r.Total > bestReward.Total {
				best, bestReward = cand, r
				noImprove = 0
			} else {
				noImprove++
			}
		} else {
			noImprove++
		}
		temp *= p.cfg.Cooling
	}
	if phase == PhaseExploring {
		phase = PhaseBudgetExhausted
	}
	p.publish(PhaseEvent{PlanID: planID, Phase: phase, Iteration: iter})

	violations := p.constraints.Violations(best)
	hard := p.constraints.HardViolations(best)
	feasible := len(hard) == 0

	res := &Result{
		Schedule:   best,
		Trace:      p.buildTrace(best),
		Reward:     bestReward,
		Feasible:   feasible,
		Violations: violations,
		Phase:      phase,
		Iterations: iter,
		Elapsed:    time.Since(started),
	}

	if p.sink != nil {
		if err := p.sink.RecordPlan(metrics.PlanEvent{
			PlanID:      planID,
			Feasible:    feasible,
			Phase:       phase.String(),
			Iterations:  iter,
			RewardTotal: bestReward.Total,
			CostTerm:    bestReward.CostTerm,
			EnergyKWh:   best.TotalEnergyKWh(),
			Elapsed:     res.Elapsed,
			Time:        started,
		}); err != nil {
			p.log.Errorf("record plan metrics: %v", err)
		}
	}
	p.log.Infof("plan %s: phase=%s iterations=%d feasible=%t reward=%.3f cost=%.3f",
		planID, phase, iter, feasible, bestReward.Total, bestReward.CostTerm)

	if !feasible {
		return res, &InfeasibleHorizonError{Violations: hard}
	}
	return res, nil
}

// carrySuffix marks a re-issued appliance. Appended on every miss, so a
// carryover stays distinct from the recurring base entry it came from.
const carrySuffix = "#carry"

// Carryovers returns the appliances the schedule failed to complete,
// re-issued for the next cycle with their earliest start reset to the
// beginning of the day and a distinct ID. Missed loads are surfaced,
// never dropped; the rename keeps per-ID schedule lookups unambiguous
// when the next day holds both the carryover and the base entry.
func Carryovers(s *model.Schedule) []model.Appliance {
	var out []model.Appliance
	for _, a := range s.MissedAppliances() {
		carried := a
		carried.ID = a.ID + carrySuffix
		carried.EarliestStart = 0
		carried.CarriedOver = true
		out = append(out, carried)
	}
	return out
}
