package unit

import (
	"github.com/google/uuid"
)

// Roster is the match-level registry that owns every Unit. The grid and the
// turn scheduler reference units by id; the roster is the only component that
// resolves an id to live unit state.
type Roster struct {
	units map[string]*Unit
	order []string // insertion order, used for stable initiative ties
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		units: make(map[string]*Unit),
	}
}

// Add registers a unit, assigning it a fresh id if it has none.
// Returns the unit's id.
func (r *Roster) Add(u *Unit) string {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, exists := r.units[u.ID]; !exists {
		r.order = append(r.order, u.ID)
	}
	r.units[u.ID] = u
	return u.ID
}

// Get resolves an id to its unit, or nil if the id is unknown.
func (r *Roster) Get(id string) *Unit {
	return r.units[id]
}

// All returns every registered unit in insertion order, including dead ones.
func (r *Roster) All() []*Unit {
	result := make([]*Unit, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.units[id])
	}
	return result
}

// Living returns every living unit in insertion order.
func (r *Roster) Living() []*Unit {
	result := make([]*Unit, 0, len(r.order))
	for _, id := range r.order {
		if u := r.units[id]; u.IsAlive() {
			result = append(result, u)
		}
	}
	return result
}

// LivingByFaction returns the number of living units in the given faction.
func (r *Roster) LivingByFaction(f Faction) int {
	count := 0
	for _, id := range r.order {
		if u := r.units[id]; u.Faction == f && u.IsAlive() {
			count++
		}
	}
	return count
}

// Count returns the total number of registered units.
func (r *Roster) Count() int {
	return len(r.order)
}
