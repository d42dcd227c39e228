// Package rules provides pure, stateless enumeration of legal moves and
// attack targets for a unit given its movement pattern.
//
// Both enumerations return sets: callers must rely on membership only, never
// on iteration order.
package rules

import (
	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/unit"
)

// Direction sets. Iteration order within each set is fixed so that
// enumeration is deterministic.
var (
	orthogonalDirs = []grid.Coord{
		{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	}
	diagonalDirs = []grid.Coord{
		{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
	allDirs = append(append([]grid.Coord{}, orthogonalDirs...), diagonalDirs...)

	knightOffsets = []grid.Coord{
		{X: 1, Y: -2}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: 1, Y: 2},
		{X: -1, Y: 2}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: -1, Y: -2},
	}
)

// CoordSet is an unordered set of grid coordinates.
type CoordSet map[grid.Coord]bool

// TargetSet maps an attackable coordinate to the id of the unit standing on it.
type TargetSet map[grid.Coord]string

// ValidMoves enumerates the legal destination cells for a unit with the given
// pattern standing at (x,y). Sliding patterns scan each direction outward up
// to moveRange steps, stopping at the first non-walkable or occupied cell; the
// occupied cell itself is never a destination. The knight jumps to its fixed
// offsets regardless of intervening occupancy. The origin is always excluded.
//
// The unit argument supplies faction-dependent behaviour (pawn forward
// direction); position and range are taken from the explicit arguments so the
// function stays pure. A moveRange <= 0 or an unrecognised pattern yields an
// empty set; the caller treats the latter as a configuration error.
func ValidMoves(p unit.Pattern, x, y int, g *grid.Grid, u *unit.Unit, moveRange int) CoordSet {
	moves := make(CoordSet)
	if g == nil || u == nil || moveRange <= 0 {
		return moves
	}

	switch p {
	case unit.PatternOrthogonal:
		slideMoves(moves, g, x, y, orthogonalDirs, moveRange)
	case unit.PatternDiagonal:
		slideMoves(moves, g, x, y, diagonalDirs, moveRange)
	case unit.PatternQueen:
		slideMoves(moves, g, x, y, allDirs, moveRange)
	case unit.PatternKing:
		slideMoves(moves, g, x, y, allDirs, 1)
	case unit.PatternKnight:
		for _, off := range knightOffsets {
			tx, ty := x+off.X, y+off.Y
			cell, ok := g.Tile(tx, ty)
			if !ok || !cell.IsWalkable() || cell.IsOccupied() {
				continue
			}
			moves[grid.Coord{X: tx, Y: ty}] = true
		}
	case unit.PatternPawn:
		slideMoves(moves, g, x, y, []grid.Coord{{X: 0, Y: pawnDY(u.Faction)}}, 1)
	}
	return moves
}

// ValidMovesFor is a convenience wrapper that reads position, pattern, and
// range from the unit itself.
func ValidMovesFor(u *unit.Unit, g *grid.Grid) CoordSet {
	return ValidMoves(u.Pattern, u.X, u.Y, g, u, u.Stats.MoveRange)
}

// ValidAttacks enumerates the attackable cells for the attacker standing at
// (x,y). Sliding patterns scan like ValidMoves, but the first occupied cell
// in a direction terminates the ray: a hostile occupant is reported as a
// target, a friendly occupant or non-walkable terrain is not. Knight attacks
// use the fixed offsets irrespective of occlusion.
func ValidAttacks(p unit.Pattern, x, y int, g *grid.Grid, roster *unit.Roster, attacker *unit.Unit, attackRange int) TargetSet {
	targets := make(TargetSet)
	if g == nil || roster == nil || attacker == nil || attackRange <= 0 {
		return targets
	}

	switch p {
	case unit.PatternOrthogonal:
		slideAttacks(targets, g, roster, attacker, x, y, orthogonalDirs, attackRange)
	case unit.PatternDiagonal:
		slideAttacks(targets, g, roster, attacker, x, y, diagonalDirs, attackRange)
	case unit.PatternQueen:
		slideAttacks(targets, g, roster, attacker, x, y, allDirs, attackRange)
	case unit.PatternKing:
		slideAttacks(targets, g, roster, attacker, x, y, allDirs, 1)
	case unit.PatternKnight:
		for _, off := range knightOffsets {
			tx, ty := x+off.X, y+off.Y
			if id := hostileAt(g, roster, attacker, tx, ty); id != "" {
				targets[grid.Coord{X: tx, Y: ty}] = id
			}
		}
	case unit.PatternPawn:
		slideAttacks(targets, g, roster, attacker, x, y, pawnDiagonals(attacker), 1)
	}
	return targets
}

// ValidAttacksFor is a convenience wrapper that reads position, pattern, and
// range from the attacker itself.
func ValidAttacksFor(u *unit.Unit, g *grid.Grid, roster *unit.Roster) TargetSet {
	return ValidAttacks(u.Pattern, u.X, u.Y, g, roster, u, u.Stats.AttackRange)
}

// slideMoves scans each direction outward, collecting empty walkable cells
// until a blocker stops the ray.
func slideMoves(moves CoordSet, g *grid.Grid, x, y int, dirs []grid.Coord, maxRange int) {
	for _, d := range dirs {
		for step := 1; step <= maxRange; step++ {
			tx, ty := x+d.X*step, y+d.Y*step
			cell, ok := g.Tile(tx, ty)
			if !ok || !cell.IsWalkable() || cell.IsOccupied() {
				break
			}
			moves[grid.Coord{X: tx, Y: ty}] = true
		}
	}
}

// slideAttacks scans each direction outward; the first occupied cell ends the
// ray and is a target only when its occupant is hostile to the attacker.
func slideAttacks(targets TargetSet, g *grid.Grid, roster *unit.Roster, attacker *unit.Unit, x, y int, dirs []grid.Coord, maxRange int) {
	for _, d := range dirs {
		for step := 1; step <= maxRange; step++ {
			tx, ty := x+d.X*step, y+d.Y*step
			cell, ok := g.Tile(tx, ty)
			if !ok || !cell.Terrain.IsWalkable() {
				break
			}
			if cell.IsOccupied() {
				if id := hostileAt(g, roster, attacker, tx, ty); id != "" {
					targets[grid.Coord{X: tx, Y: ty}] = id
				}
				break
			}
		}
	}
}

// hostileAt returns the id of a living hostile unit at (tx,ty), or "".
func hostileAt(g *grid.Grid, roster *unit.Roster, attacker *unit.Unit, tx, ty int) string {
	id := g.OccupantID(tx, ty)
	if id == "" {
		return ""
	}
	occupant := roster.Get(id)
	if occupant == nil || !occupant.IsAlive() {
		return ""
	}
	if !attacker.Faction.Hostile(occupant.Faction) {
		return ""
	}
	return id
}

// pawnDiagonals returns the two forward diagonal directions for a pawn.
func pawnDiagonals(u *unit.Unit) []grid.Coord {
	dy := pawnDY(u.Faction)
	return []grid.Coord{{X: -1, Y: dy}, {X: 1, Y: dy}}
}

// pawnDY returns the forward y step for a faction: player units advance
// toward row 1, everyone else toward the far row.
func pawnDY(f unit.Faction) int {
	if f == unit.FactionPlayer {
		return -1
	}
	return 1
}
