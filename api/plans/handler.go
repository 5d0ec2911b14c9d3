// Package plans exposes the most recent day plan over HTTP for dashboards
// and home-automation integrations.
package plans

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/kilianp07/hems/app"
)

// Store holds the latest plan produced by the service. Safe for concurrent
// use: the serve loop replaces the plan while handlers read it.
type Store struct {
	mu   sync.RWMutex
	plan *app.DayPlan
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Set replaces the stored plan.
func (s *Store) Set(p *app.DayPlan) {
	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
}

// Latest returns the stored plan, nil before the first cycle completes.
func (s *Store) Latest() *app.DayPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// NewPlanHandler returns an HTTP handler serving the latest plan via
// GET /api/plan. Requests must carry "Bearer <token>" in the Authorization
// header when token is non-empty.
func NewPlanHandler(store *Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" {
			if r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		plan := store.Latest()
		if plan == nil {
			http.Error(w, "no plan yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plan); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
