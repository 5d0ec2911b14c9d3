package planner

// Package planner turns a household's planning input into a 24-slot
// action schedule. It models the day as a finite-horizon decision process
// and searches the space of complete candidate schedules: a greedy seed
// (cheapest feasible windows, LP-allocated EV charging, peak-aware HVAC
// relaxation) refined by bounded simulated annealing. Every evaluated
// candidate passes the constraint controller's hard checks first; the
// search always terminates within its iteration and context budget and
// returns the best schedule found together with a per-action decision
// trace.
