package planner

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/hems/core/model"
)

const rateEpsilon = 1e-6

// solveChargeLP minimizes the charging bill subject to delivering the
// required energy with per-slot rates bounded by maxRate.
func solveChargeLP(prices []float64, required, maxRate float64) ([]float64, error) {
	n := len(prices)
	c := make([]float64, n)
	copy(c, prices)

	g := mat.NewDense(n, n, nil)
	h := make([]float64, n)
	for i := 0; i < n; i++ {
		g.Set(i, i, 1)
		h[i] = maxRate
	}

	A := mat.NewDense(1, n, nil)
	for i := 0; i < n; i++ {
		A.Set(0, i, 1)
	}
	b := []float64{required}

	cStd, AStd, bStd := lp.Convert(c, g, h, A, b)
	_, sol, err := lp.Simplex(cStd, AStd, bStd, 1e-7, nil)
	if err != nil {
		return nil, err
	}
	return sol[:n], nil
}

// chargeSolve points to the LP solver so tests can simulate failures.
var chargeSolve = solveChargeLP

// allocateEV distributes the EV energy requirement over the candidate
// slots. It tries the LP first and falls back to a deterministic greedy
// fill of the cheapest slots when the LP fails or the requirement cannot
// be met exactly.
func (p *Planner) allocateEV(prices model.PriceSchedule, slots []model.TimeSlot, required, maxRate float64) []float64 {
	rates := make([]float64, len(slots))
	if len(slots) == 0 || required <= 0 {
		return rates
	}

	slotPrices := make([]float64, len(slots))
	for i, t := range slots {
		slotPrices[i] = prices.At(t)
	}

	if required <= maxRate*float64(len(slots)) {
		if sol, err := chargeSolve(slotPrices, required, maxRate); err == nil {
			for i := range rates {
				r := sol[i]
				if r < 0 {
					r = 0
				}
				if r > maxRate {
					r = maxRate
				}
				rates[i] = r
			}
			return rates
		}
		p.log.Warnf("ev charge LP failed, using greedy fill")
	}

	// Greedy fallback: cheapest slots first, each filled to the maximum
	// rate until the requirement is met or the window is exhausted.
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return slotPrices[order[a]] < slotPrices[order[b]] })
	remaining := required
	for _, i := range order {
		if remaining <= rateEpsilon {
			break
		}
		r := maxRate
		if r > remaining {
			r = remaining
		}
		rates[i] = r
		remaining -= r
	}
	return rates
}
