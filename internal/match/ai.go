package match

import (
	"context"

	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/unit"
)

// EnemyAI drives enemy units through the same command surface a player input
// handler uses; it has no privileged access to match internals.
type EnemyAI struct {
	match *Match
}

// NewEnemyAI creates an AI driver for the given match.
func NewEnemyAI(m *Match) *EnemyAI {
	return &EnemyAI{match: m}
}

// TakeTurn plays out the active enemy unit's turn: attack when a target is in
// reach, otherwise advance toward the nearest player unit, then end the turn.
func (ai *EnemyAI) TakeTurn(ctx context.Context) {
	m := ai.match
	u, ok := m.Scheduler().ActiveUnit()
	if !ok || u.Faction != unit.FactionEnemy {
		return
	}

	if ai.tryAttack(ctx, u) {
		// Target destroyed or budget spent; the scheduler may have advanced.
		if active, stillOK := m.Scheduler().ActiveUnit(); !stillOK || active.ID != u.ID {
			return
		}
	}

	if !u.Flags.HasMoved {
		if dest, found := ai.bestMove(u); found {
			if err := m.Move(u.ID, dest.X, dest.Y); err == nil {
				// A move can open a new attack line.
				if active, stillOK := m.Scheduler().ActiveUnit(); stillOK && active.ID == u.ID {
					ai.tryAttack(ctx, u)
				}
			}
		}
	}

	if active, stillOK := m.Scheduler().ActiveUnit(); stillOK && active.ID == u.ID {
		m.EndTurn(u.ID)
	}
}

// tryAttack attacks the weakest reachable target. Returns true if an attack
// was committed.
func (ai *EnemyAI) tryAttack(ctx context.Context, u *unit.Unit) bool {
	if u.Flags.HasAttacked {
		return false
	}
	targets, err := ai.match.ValidAttacks(u.ID)
	if err != nil || len(targets) == 0 {
		return false
	}

	// Lowest remaining health first; coordinate order breaks ties so the
	// choice does not depend on map iteration order.
	var bestCoord grid.Coord
	var best *unit.Unit
	for coord, id := range targets {
		candidate := ai.match.Roster().Get(id)
		if candidate == nil {
			continue
		}
		if best == nil ||
			candidate.Stats.Health < best.Stats.Health ||
			(candidate.Stats.Health == best.Stats.Health && coordLess(coord, bestCoord)) {
			best = candidate
			bestCoord = coord
		}
	}
	if best == nil {
		return false
	}
	_, err = ai.match.Attack(ctx, u.ID, bestCoord.X, bestCoord.Y)
	return err == nil
}

// bestMove picks the legal destination that gets the unit closest to the
// nearest living player unit.
func (ai *EnemyAI) bestMove(u *unit.Unit) (grid.Coord, bool) {
	target := ai.nearestPlayerUnit(u)
	if target == nil {
		return grid.Coord{}, false
	}
	moves, err := ai.match.ValidMoves(u.ID)
	if err != nil || len(moves) == 0 {
		return grid.Coord{}, false
	}

	var best grid.Coord
	bestDist := -1
	for coord := range moves {
		d := chebyshev(coord.X, coord.Y, target.X, target.Y)
		if bestDist == -1 || d < bestDist || (d == bestDist && coordLess(coord, best)) {
			best = coord
			bestDist = d
		}
	}
	// Standing still is better than a move that gains no ground.
	if bestDist >= chebyshev(u.X, u.Y, target.X, target.Y) {
		return grid.Coord{}, false
	}
	return best, true
}

// nearestPlayerUnit returns the living player unit with the shortest path
// from the given unit, falling back to straight-line distance when no path
// exists.
func (ai *EnemyAI) nearestPlayerUnit(u *unit.Unit) *unit.Unit {
	var nearest *unit.Unit
	bestCost := -1
	for _, candidate := range ai.match.Roster().Living() {
		if candidate.Faction != unit.FactionPlayer {
			continue
		}
		cost := chebyshev(u.X, u.Y, candidate.X, candidate.Y)
		if path, ok := ai.match.Grid().FindPath(u.X, u.Y, candidate.X, candidate.Y); ok {
			cost = len(path)
		}
		if bestCost == -1 || cost < bestCost {
			nearest = candidate
			bestCost = cost
		}
	}
	return nearest
}

// coordLess orders coordinates row-major for deterministic tie-breaking.
func coordLess(a, b grid.Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// chebyshev returns the chessboard distance between two positions.
func chebyshev(x0, y0, x1, y1 int) int {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
