// Package effects is the status-effect collaborator. It owns effect
// definitions and turn-boundary processing; the combat core only talks to it
// through the combat.StatusHook surface.
package effects

import (
	"math/rand"

	"github.com/samdwyer/gridclash/internal/combat"
	"github.com/samdwyer/gridclash/internal/unit"
)

// Effect names.
const (
	Shielded = combat.ShieldedStatus
	Poisoned = "poisoned"
	Weakened = "weakened"
	Slowed   = "slowed"
)

// negativeEffects are the candidates for RequestRandom, with the duration
// and per-turn power each is applied at.
var negativeEffects = []unit.Status{
	{Name: Poisoned, RemainingTurns: 3, Power: 2},
	{Name: Weakened, RemainingTurns: 2, Power: 2},
	{Name: Slowed, RemainingTurns: 2, Power: 1},
}

// Tick describes what happened to one effect during turn-boundary processing.
type Tick struct {
	Unit   *unit.Unit
	Name   string
	Damage int
	Ended  bool
}

// Tracker implements combat.StatusHook. It reads and writes the status
// instances stored on units and reports ticks for logging.
type Tracker struct {
	rng *rand.Rand

	// LastTicks holds the ticks from the most recent Trigger call, for the
	// caller's combat log.
	LastTicks []Tick
}

// NewTracker creates a tracker using the given randomness source.
func NewTracker(rng *rand.Rand) *Tracker {
	return &Tracker{rng: rng}
}

// Has reports whether the named effect is active on the unit.
func (t *Tracker) Has(u *unit.Unit, name string) bool {
	return u.HasStatus(name)
}

// Apply puts the named effect on the unit with the given duration and power.
func (t *Tracker) Apply(u *unit.Unit, name string, turns, power int) {
	u.AddStatus(unit.Status{Name: name, RemainingTurns: turns, Power: power})
}

// RequestRandom applies a randomly chosen negative effect to the unit.
func (t *Tracker) RequestRandom(u *unit.Unit) {
	pick := negativeEffects[t.rng.Intn(len(negativeEffects))]
	u.AddStatus(pick)
}

// Trigger runs turn-boundary processing for the unit. Poison damage lands at
// turn start; durations count down and expire at turn end.
func (t *Tracker) Trigger(u *unit.Unit, timing combat.EffectTiming) {
	t.LastTicks = t.LastTicks[:0]

	switch timing {
	case combat.TimingTurnStart:
		for _, s := range u.Statuses {
			if s.Name == Poisoned {
				dmg := u.TakeDamage(s.Power)
				t.LastTicks = append(t.LastTicks, Tick{Unit: u, Name: s.Name, Damage: dmg})
			}
		}
	case combat.TimingTurnEnd:
		remaining := u.Statuses[:0]
		for _, s := range u.Statuses {
			s.RemainingTurns--
			if s.RemainingTurns <= 0 {
				t.LastTicks = append(t.LastTicks, Tick{Unit: u, Name: s.Name, Ended: true})
				continue
			}
			remaining = append(remaining, s)
		}
		u.Statuses = remaining
	}
}

var _ combat.StatusHook = (*Tracker)(nil)
