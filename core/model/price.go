package model

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PriceSchedule holds the time-of-use price per slot for one planning
// horizon. It is loaded once per cycle and read-only during planning.
type PriceSchedule struct {
	prices []float64
}

// NewPriceSchedule validates and wraps a per-slot price series.
func NewPriceSchedule(prices []float64) (PriceSchedule, error) {
	if len(prices) == 0 {
		return PriceSchedule{}, validationErrorf("price_schedule", "empty price series")
	}
	for i, p := range prices {
		if p < 0 {
			return PriceSchedule{}, validationErrorf("price_schedule", "negative price %.4f at slot %d", p, i)
		}
	}
	cp := make([]float64, len(prices))
	copy(cp, prices)
	return PriceSchedule{prices: cp}, nil
}

// Horizon returns the number of slots covered by the schedule.
func (p PriceSchedule) Horizon() int { return len(p.prices) }

// At returns the price per kWh for the given slot.
func (p PriceSchedule) At(t TimeSlot) float64 { return p.prices[int(t)%len(p.prices)] }

// Values returns a copy of the full price series.
func (p PriceSchedule) Values() []float64 {
	cp := make([]float64, len(p.prices))
	copy(cp, p.prices)
	return cp
}

// PeakThreshold returns the price at the top quartile of the series.
// Slots priced strictly above it count as peak slots.
func (p PriceSchedule) PeakThreshold() float64 {
	sorted := make([]float64, len(p.prices))
	copy(sorted, p.prices)
	sort.Float64s(sorted)
	return stat.Quantile(0.75, stat.Empirical, sorted, nil)
}

// PeakWindow returns the first contiguous run of peak-priced slots.
// The second return value is false when prices are flat and no slot
// stands out as peak.
func (p PriceSchedule) PeakWindow() (Window, bool) {
	low := p.prices[0]
	high := p.prices[0]
	for _, v := range p.prices {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	if high <= low {
		return Window{}, false
	}
	thr := p.PeakThreshold()
	if w, ok := p.firstRunAbove(thr); ok {
		return w, true
	}
	// A peak wider than the top quartile pushes the threshold onto the
	// peak price itself; fall back to the run at the maximum.
	return p.firstRunAbove(high - (high-low)*1e-9)
}

func (p PriceSchedule) firstRunAbove(thr float64) (Window, bool) {
	start := -1
	for i, v := range p.prices {
		if v > thr {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			return Window{From: TimeSlot(start), To: TimeSlot(i - 1)}, true
		}
	}
	if start >= 0 {
		return Window{From: TimeSlot(start), To: TimeSlot(len(p.prices) - 1)}, true
	}
	return Window{}, false
}

// Tier labels a slot relative to the rest of the horizon.
type Tier string

const (
	TierOffPeak Tier = "off-peak"
	TierMid     Tier = "mid-peak"
	TierPeak    Tier = "peak"
)

// TierAt classifies the slot price against the series quartiles.
func (p PriceSchedule) TierAt(t TimeSlot) Tier {
	sorted := make([]float64, len(p.prices))
	copy(sorted, p.prices)
	sort.Float64s(sorted)
	lowThr := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	highThr := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	low := sorted[0]
	high := sorted[len(sorted)-1]
	v := p.At(t)
	switch {
	case v > highThr, highThr == high && v == high && high > low:
		return TierPeak
	case v <= lowThr:
		return TierOffPeak
	default:
		return TierMid
	}
}

// StandardTOU returns the standard residential tariff: off-peak before
// 06:00, peak 16:00-21:00, mid-peak elsewhere.
func StandardTOU() PriceSchedule {
	return touTable(0.08, 0.15, 0.32, 16, 21)
}

// SummerTOU returns the summer tariff with a longer, pricier peak
// (14:00-22:00).
func SummerTOU() PriceSchedule {
	return touTable(0.09, 0.17, 0.38, 14, 22)
}

// WinterTOU returns the winter tariff with a short evening peak
// (17:00-20:00).
func WinterTOU() PriceSchedule {
	return touTable(0.07, 0.14, 0.28, 17, 20)
}

func touTable(offPeak, mid, peak float64, peakFrom, peakTo int) PriceSchedule {
	prices := make([]float64, DefaultHorizon)
	for h := range prices {
		switch {
		case h < 6:
			prices[h] = offPeak
		case h >= peakFrom && h < peakTo:
			prices[h] = peak
		default:
			prices[h] = mid
		}
	}
	return PriceSchedule{prices: prices}
}
