// Package combat computes and applies the outcome of attacker-vs-defender
// exchanges.
package combat

import (
	"errors"
	"math/rand"

	"github.com/samdwyer/gridclash/internal/unit"
)

// EffectTiming identifies a turn boundary at which the status-effect
// collaborator is triggered.
type EffectTiming int

const (
	// TimingTurnStart fires when a unit's turn begins.
	TimingTurnStart EffectTiming = iota
	// TimingTurnEnd fires when a unit's turn ends.
	TimingTurnEnd
)

// ShieldedStatus is the status name consulted during damage application.
// A shielded defender takes half damage, floored.
const ShieldedStatus = "shielded"

// StatusHook is the surface the resolver needs from the external
// status-effect collaborator. The resolver only issues requests; it owns no
// effect definitions.
type StatusHook interface {
	// Has reports whether the named effect is active on the unit.
	Has(u *unit.Unit, name string) bool
	// RequestRandom asks the collaborator to apply a randomly chosen
	// negative effect to the unit.
	RequestRandom(u *unit.Unit)
	// Trigger runs the collaborator's turn-boundary processing for the unit.
	Trigger(u *unit.Unit, timing EffectTiming)
}

// Validation failures. All of them leave attacker and defender unchanged.
var (
	// ErrSameFaction is returned when the attacker and defender share a faction.
	ErrSameFaction = errors.New("combat: attacker and defender share a faction")
	// ErrAlreadyAttacked is returned when the attacker has already attacked this turn.
	ErrAlreadyAttacked = errors.New("combat: attacker has already attacked this turn")
	// ErrDeadCombatant is returned when either side is already defeated.
	ErrDeadCombatant = errors.New("combat: combatant is not alive")
)

// Config holds the probabilistic tuning of the resolver. Tests pin the
// chances to 0 or 1 for deterministic outcomes.
type Config struct {
	MissChance     float64 // probability an attack misses entirely
	CritChance     float64 // probability a hit is critical; exclusive with miss
	CritMultiplier int     // damage multiplier on a critical hit
	EffectChance   float64 // probability a hit requests a random negative effect
}

// DefaultConfig returns the canonical tuning: 5% miss, 10% crit at double
// damage, 20% effect proc.
func DefaultConfig() Config {
	return Config{
		MissChance:     0.05,
		CritChance:     0.10,
		CritMultiplier: 2,
		EffectChance:   0.20,
	}
}

// Result is the outcome of a single resolved attack.
type Result struct {
	Damage   int
	Critical bool
	Missed   bool
	// Defeated signals that the defender's health reached zero. Removing the
	// unit from the grid and the initiative queue is the caller's job.
	Defeated bool
}

// Resolver resolves attacks. Range and adjacency validity are the caller's
// responsibility; attacks are expected to be pre-filtered through the
// movement rules.
type Resolver struct {
	cfg      Config
	rng      *rand.Rand
	statuses StatusHook
}

// NewResolver creates a resolver with the given tuning, randomness source,
// and status-effect collaborator. The hook may be nil, in which case no
// status interaction occurs.
func NewResolver(cfg Config, rng *rand.Rand, statuses StatusHook) *Resolver {
	return &Resolver{
		cfg:      cfg,
		rng:      rng,
		statuses: statuses,
	}
}

// Attack resolves one exchange and applies the damage to the defender.
//
// Miss is rolled first; a missed attack deals no damage and has no further
// effects. Otherwise a critical is rolled, the mitigated damage
// max(1, attack-defense) is computed, doubled on a critical, and halved
// (floored) when the defender is shielded. Health is clamped at zero.
func (r *Resolver) Attack(attacker, defender *unit.Unit) (Result, error) {
	if !attacker.Faction.Hostile(defender.Faction) {
		return Result{}, ErrSameFaction
	}
	if attacker.Flags.HasAttacked {
		return Result{}, ErrAlreadyAttacked
	}
	if !attacker.IsAlive() || !defender.IsAlive() {
		return Result{}, ErrDeadCombatant
	}

	attacker.Flags.HasAttacked = true

	if r.rng.Float64() < r.cfg.MissChance {
		return Result{Missed: true}, nil
	}

	result := Result{}
	if r.rng.Float64() < r.cfg.CritChance {
		result.Critical = true
	}

	damage := attacker.Stats.Attack - defender.Stats.Defense
	if damage < 1 {
		damage = 1
	}
	if result.Critical {
		damage *= r.cfg.CritMultiplier
	}
	if r.statuses != nil && r.statuses.Has(defender, ShieldedStatus) {
		damage /= 2
	}

	result.Damage = defender.TakeDamage(damage)
	result.Defeated = !defender.IsAlive()

	if r.statuses != nil && r.rng.Float64() < r.cfg.EffectChance {
		r.statuses.RequestRandom(defender)
	}

	return result, nil
}

// PreviewDamage computes the non-crit, non-miss damage of an attack without
// applying it. Used by AI target selection and UI forecasts.
func (r *Resolver) PreviewDamage(attacker, defender *unit.Unit) int {
	damage := attacker.Stats.Attack - defender.Stats.Defense
	if damage < 1 {
		damage = 1
	}
	if r.statuses != nil && r.statuses.Has(defender, ShieldedStatus) {
		damage /= 2
	}
	return damage
}
