package planner

import (
	"fmt"
	"strings"

	"github.com/kilianp07/hems/core/model"
)

// InfeasibleHorizonError reports that no schedule satisfies every hard
// constraint. The planner still returns the least-bad schedule it found;
// the error carries the violations so the caller can decide whether to
// relax constraints and retry.
type InfeasibleHorizonError struct {
	Violations []model.Violation
}

func (e *InfeasibleHorizonError) Error() string {
	if len(e.Violations) == 0 {
		return "no feasible schedule for the horizon"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("no feasible schedule for the horizon: %s", strings.Join(parts, "; "))
}
