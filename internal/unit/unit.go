// Package unit provides combat units and the match-level roster that owns them.
package unit

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Faction represents a unit's team affiliation.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionNeutral
)

// String returns a human-readable faction name.
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// ParseFaction converts a faction name to a Faction.
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "player":
		return FactionPlayer, nil
	case "enemy":
		return FactionEnemy, nil
	case "neutral":
		return FactionNeutral, nil
	default:
		return FactionNeutral, fmt.Errorf("unknown faction %q", s)
	}
}

// Hostile reports whether units of faction f may target units of other.
// Anything outside the unit's own faction is a legal target.
func (f Faction) Hostile(other Faction) bool {
	return f != other
}

// Pattern is the chess-piece-style movement rule set for a unit.
// The set is closed; movement enumeration matches it exhaustively.
type Pattern int

const (
	// PatternOrthogonal slides along the four cardinal directions.
	PatternOrthogonal Pattern = iota
	// PatternDiagonal slides along the four diagonal directions.
	PatternDiagonal
	// PatternKnight jumps to the eight fixed knight offsets.
	PatternKnight
	// PatternQueen slides along all eight directions.
	PatternQueen
	// PatternKing steps one cell in any of the eight directions.
	PatternKing
	// PatternPawn steps one cell toward the opposing side and
	// attacks the two forward diagonals.
	PatternPawn
)

// String returns the pattern name used in data files.
func (p Pattern) String() string {
	switch p {
	case PatternOrthogonal:
		return "orthogonal"
	case PatternDiagonal:
		return "diagonal"
	case PatternKnight:
		return "knight"
	case PatternQueen:
		return "queen"
	case PatternKing:
		return "king"
	case PatternPawn:
		return "pawn"
	default:
		return "unknown"
	}
}

// ParsePattern converts a pattern name from a data file to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	switch s {
	case "orthogonal":
		return PatternOrthogonal, nil
	case "diagonal":
		return PatternDiagonal, nil
	case "knight":
		return PatternKnight, nil
	case "queen":
		return PatternQueen, nil
	case "king":
		return PatternKing, nil
	case "pawn":
		return PatternPawn, nil
	default:
		return PatternOrthogonal, fmt.Errorf("unknown movement pattern %q", s)
	}
}

// Stats holds a unit's combat statistics.
type Stats struct {
	Health      int
	MaxHealth   int
	Attack      int
	Defense     int
	MoveRange   int
	AttackRange int
	Energy      int
	MaxEnergy   int
	Initiative  int
	Sight       int
}

// Flags are the per-turn action flags, reset at the start of each unit turn.
type Flags struct {
	HasMoved       bool
	HasAttacked    bool
	HasUsedAbility bool
}

// Status is an active status effect stored on a unit. Effect definitions and
// their semantics are owned by the status-effect collaborator; the unit only
// carries the instances.
type Status struct {
	Name           string
	RemainingTurns int
	Power          int
}

// Unit represents a single combatant on the grid. Units hold no references
// back to the grid or the scheduler; they are resolved by id through the
// Roster that created them.
type Unit struct {
	ID      string
	Name    string
	Glyph   rune
	Color   tcell.Color
	Faction Faction
	Pattern Pattern
	X, Y    int

	Stats    Stats
	Flags    Flags
	Statuses []Status
}

// GetID returns the unit's roster id.
func (u *Unit) GetID() string { return u.ID }

// IsAlive returns true if the unit has health remaining.
func (u *Unit) IsAlive() bool { return u.Stats.Health > 0 }

// Position returns the unit's current grid coordinates.
func (u *Unit) Position() (int, int) { return u.X, u.Y }

// SetPosition updates the unit's recorded coordinates. The grid is the
// authority on occupancy; this only mirrors its decision.
func (u *Unit) SetPosition(x, y int) {
	u.X = x
	u.Y = y
}

// ResetTurnFlags clears the per-turn action flags.
func (u *Unit) ResetTurnFlags() {
	u.Flags = Flags{}
}

// TakeDamage reduces health, clamped at zero, and returns the damage applied.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > u.Stats.Health {
		actual = u.Stats.Health
	}
	u.Stats.Health -= actual
	return actual
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if u.Stats.Health+actual > u.Stats.MaxHealth {
		actual = u.Stats.MaxHealth - u.Stats.Health
	}
	u.Stats.Health += actual
	return actual
}

// SpendEnergy deducts energy and returns false if insufficient.
func (u *Unit) SpendEnergy(amount int) bool {
	if u.Stats.Energy < amount {
		return false
	}
	u.Stats.Energy -= amount
	return true
}

// HasStatus reports whether a status effect with the given name is active.
func (u *Unit) HasStatus(name string) bool {
	for _, s := range u.Statuses {
		if s.Name == name {
			return true
		}
	}
	return false
}

// AddStatus adds a status effect, replacing an existing instance of the
// same name rather than stacking it.
func (u *Unit) AddStatus(s Status) {
	for i, existing := range u.Statuses {
		if existing.Name == s.Name {
			u.Statuses[i] = s
			return
		}
	}
	u.Statuses = append(u.Statuses, s)
}

// RemoveStatus removes the status effect with the given name, if present.
func (u *Unit) RemoveStatus(name string) {
	for i, existing := range u.Statuses {
		if existing.Name == name {
			u.Statuses = append(u.Statuses[:i], u.Statuses[i+1:]...)
			return
		}
	}
}
