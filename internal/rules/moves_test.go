package rules

import (
	"testing"

	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/unit"
)

// place registers a unit with the roster and puts it on the grid.
func place(t *testing.T, g *grid.Grid, r *unit.Roster, u *unit.Unit, x, y int) {
	t.Helper()
	r.Add(u)
	if !g.Place(u, x, y) {
		t.Fatalf("could not place %s at (%d,%d)", u.Name, x, y)
	}
}

func newTestUnit(name string, f unit.Faction, p unit.Pattern) *unit.Unit {
	return &unit.Unit{
		Name:    name,
		Faction: f,
		Pattern: p,
		Stats: unit.Stats{
			Health:    10,
			MaxHealth: 10,
		},
	}
}

func TestOrthogonalMovesOpenBoard(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	u := newTestUnit("rook", unit.FactionPlayer, unit.PatternOrthogonal)
	place(t, g, r, u, 5, 5)

	// Range 2, far from edges: exactly 2 cells per cardinal direction.
	moves := ValidMoves(unit.PatternOrthogonal, 5, 5, g, u, 2)
	if len(moves) != 8 {
		t.Fatalf("open-board orthogonal range 2 = %d moves, want 8", len(moves))
	}
	for _, want := range []grid.Coord{
		{X: 5, Y: 3}, {X: 5, Y: 4}, {X: 5, Y: 6}, {X: 5, Y: 7},
		{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 6, Y: 5}, {X: 7, Y: 5},
	} {
		if !moves[want] {
			t.Errorf("expected move %v missing", want)
		}
	}
	if moves[grid.Coord{X: 5, Y: 5}] {
		t.Error("origin must never be a move")
	}
}

func TestSlidingStopsAtBlocker(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	u := newTestUnit("rook", unit.FactionPlayer, unit.PatternOrthogonal)
	blocker := newTestUnit("blocker", unit.FactionPlayer, unit.PatternKing)
	place(t, g, r, u, 5, 5)
	place(t, g, r, blocker, 6, 5)

	moves := ValidMoves(unit.PatternOrthogonal, 5, 5, g, u, 3)

	// The occupied cell and everything beyond it are excluded.
	if moves[grid.Coord{X: 6, Y: 5}] {
		t.Error("occupied cell must not be a move")
	}
	if moves[grid.Coord{X: 7, Y: 5}] || moves[grid.Coord{X: 8, Y: 5}] {
		t.Error("cells beyond a blocker must not be moves")
	}
	// Other directions are unaffected: 3 up, 3 down, 3 left.
	if len(moves) != 9 {
		t.Errorf("blocked-east orthogonal range 3 = %d moves, want 9", len(moves))
	}
}

func TestKnightIgnoresAdjacentBlockers(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	u := newTestUnit("knight", unit.FactionPlayer, unit.PatternKnight)
	place(t, g, r, u, 5, 5)

	// Surround the knight with walls; its jumps are unaffected.
	for _, d := range []grid.Coord{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4}, {X: 4, Y: 5}, {X: 6, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}} {
		g.SetTerrain(d.X, d.Y, grid.TerrainWall)
	}

	moves := ValidMoves(unit.PatternKnight, 5, 5, g, u, 1)
	if len(moves) != 8 {
		t.Fatalf("surrounded knight = %d moves, want 8", len(moves))
	}

	// An occupied destination square is excluded.
	occupier := newTestUnit("occupier", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, occupier, 6, 3)

	moves = ValidMoves(unit.PatternKnight, 5, 5, g, u, 1)
	if moves[grid.Coord{X: 6, Y: 3}] {
		t.Error("occupied destination must not be a knight move")
	}
	if len(moves) != 7 {
		t.Errorf("knight with one occupied destination = %d moves, want 7", len(moves))
	}
}

func TestSlidingAttackTermination(t *testing.T) {
	g := grid.New(9, 1)
	r := unit.NewRoster()
	attacker := newTestUnit("rook", unit.FactionPlayer, unit.PatternOrthogonal)
	enemy := newTestUnit("near", unit.FactionEnemy, unit.PatternKing)
	far := newTestUnit("far", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, attacker, 1, 1)
	place(t, g, r, enemy, 3, 1)
	place(t, g, r, far, 5, 1)

	targets := ValidAttacks(unit.PatternOrthogonal, 1, 1, g, r, attacker, 8)

	// The first enemy terminates the ray and is the only target east.
	if _, ok := targets[grid.Coord{X: 3, Y: 1}]; !ok {
		t.Error("first enemy on the ray should be attackable")
	}
	if _, ok := targets[grid.Coord{X: 5, Y: 1}]; ok {
		t.Error("enemy beyond the first must not be attackable")
	}
	if len(targets) != 1 {
		t.Errorf("targets = %d, want 1", len(targets))
	}
}

func TestFriendlyBlocksAttackRay(t *testing.T) {
	g := grid.New(9, 1)
	r := unit.NewRoster()
	attacker := newTestUnit("rook", unit.FactionPlayer, unit.PatternOrthogonal)
	friend := newTestUnit("friend", unit.FactionPlayer, unit.PatternKing)
	enemy := newTestUnit("enemy", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, attacker, 1, 1)
	place(t, g, r, friend, 3, 1)
	place(t, g, r, enemy, 5, 1)

	targets := ValidAttacks(unit.PatternOrthogonal, 1, 1, g, r, attacker, 8)
	if len(targets) != 0 {
		t.Errorf("friendly unit should block the ray without producing a target, got %d targets", len(targets))
	}
}

func TestAttackRayStoppedByTerrain(t *testing.T) {
	g := grid.New(9, 1)
	r := unit.NewRoster()
	attacker := newTestUnit("rook", unit.FactionPlayer, unit.PatternOrthogonal)
	enemy := newTestUnit("enemy", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, attacker, 1, 1)
	place(t, g, r, enemy, 5, 1)
	g.SetTerrain(3, 1, grid.TerrainWall)

	targets := ValidAttacks(unit.PatternOrthogonal, 1, 1, g, r, attacker, 8)
	if len(targets) != 0 {
		t.Errorf("wall should terminate the attack ray, got %d targets", len(targets))
	}
}

func TestKnightAttackIgnoresOcclusion(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	attacker := newTestUnit("knight", unit.FactionPlayer, unit.PatternKnight)
	enemy := newTestUnit("enemy", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, attacker, 5, 5)
	place(t, g, r, enemy, 6, 3)

	// Wall directly between does not matter for a knight.
	g.SetTerrain(5, 4, grid.TerrainWall)
	g.SetTerrain(6, 4, grid.TerrainWall)

	targets := ValidAttacks(unit.PatternKnight, 5, 5, g, r, attacker, 1)
	if id, ok := targets[grid.Coord{X: 6, Y: 3}]; !ok || id != enemy.ID {
		t.Error("knight should attack over intervening walls")
	}
}

func TestPawnForwardByFaction(t *testing.T) {
	g := grid.New(5, 5)
	r := unit.NewRoster()

	playerPawn := newTestUnit("pp", unit.FactionPlayer, unit.PatternPawn)
	enemyPawn := newTestUnit("ep", unit.FactionEnemy, unit.PatternPawn)
	place(t, g, r, playerPawn, 2, 3)
	place(t, g, r, enemyPawn, 4, 3)

	// Player pawns advance toward row 1, enemy pawns toward the far row.
	pMoves := ValidMoves(unit.PatternPawn, 2, 3, g, playerPawn, 1)
	if len(pMoves) != 1 || !pMoves[grid.Coord{X: 2, Y: 2}] {
		t.Errorf("player pawn moves = %v, want only (2,2)", pMoves)
	}
	eMoves := ValidMoves(unit.PatternPawn, 4, 3, g, enemyPawn, 1)
	if len(eMoves) != 1 || !eMoves[grid.Coord{X: 4, Y: 4}] {
		t.Errorf("enemy pawn moves = %v, want only (4,4)", eMoves)
	}
}

func TestPawnAttacksForwardDiagonals(t *testing.T) {
	g := grid.New(5, 5)
	r := unit.NewRoster()
	pawn := newTestUnit("pawn", unit.FactionPlayer, unit.PatternPawn)
	ahead := newTestUnit("ahead", unit.FactionEnemy, unit.PatternKing)
	diag := newTestUnit("diag", unit.FactionEnemy, unit.PatternKing)
	place(t, g, r, pawn, 3, 3)
	place(t, g, r, ahead, 3, 2)
	place(t, g, r, diag, 2, 2)

	targets := ValidAttacks(unit.PatternPawn, 3, 3, g, r, pawn, 1)
	if _, ok := targets[grid.Coord{X: 2, Y: 2}]; !ok {
		t.Error("forward diagonal should be attackable")
	}
	if _, ok := targets[grid.Coord{X: 3, Y: 2}]; ok {
		t.Error("straight ahead must not be a pawn attack")
	}
}

func TestKingRangeFixedAtOne(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	king := newTestUnit("king", unit.FactionPlayer, unit.PatternKing)
	place(t, g, r, king, 5, 5)

	// Requested range is ignored: the king always steps one cell.
	moves := ValidMoves(unit.PatternKing, 5, 5, g, king, 4)
	if len(moves) != 8 {
		t.Errorf("king moves = %d, want 8", len(moves))
	}
	if moves[grid.Coord{X: 5, Y: 3}] {
		t.Error("king must not reach distance 2")
	}
}

func TestQueenCombinesDirections(t *testing.T) {
	g := grid.New(9, 9)
	r := unit.NewRoster()
	queen := newTestUnit("queen", unit.FactionPlayer, unit.PatternQueen)
	place(t, g, r, queen, 5, 5)

	// Range 2 open board: 8 directions x 2 steps.
	moves := ValidMoves(unit.PatternQueen, 5, 5, g, queen, 2)
	if len(moves) != 16 {
		t.Errorf("queen range 2 = %d moves, want 16", len(moves))
	}
}

func TestZeroRangeAndNilInputs(t *testing.T) {
	g := grid.New(5, 5)
	r := unit.NewRoster()
	u := newTestUnit("u", unit.FactionPlayer, unit.PatternOrthogonal)
	place(t, g, r, u, 3, 3)

	if moves := ValidMoves(unit.PatternOrthogonal, 3, 3, g, u, 0); len(moves) != 0 {
		t.Error("range 0 must yield no moves")
	}
	if moves := ValidMoves(unit.PatternOrthogonal, 3, 3, g, u, -2); len(moves) != 0 {
		t.Error("negative range must yield no moves")
	}
	if moves := ValidMoves(unit.Pattern(99), 3, 3, g, u, 2); len(moves) != 0 {
		t.Error("unknown pattern must yield no moves")
	}
	if targets := ValidAttacks(unit.PatternOrthogonal, 3, 3, g, r, u, 0); len(targets) != 0 {
		t.Error("range 0 must yield no targets")
	}
}

func TestDiagonalEdgeClipping(t *testing.T) {
	g := grid.New(8, 8)
	r := unit.NewRoster()
	bishop := newTestUnit("bishop", unit.FactionPlayer, unit.PatternDiagonal)
	place(t, g, r, bishop, 1, 1)

	// Corner: only the one diagonal into the board.
	moves := ValidMoves(unit.PatternDiagonal, 1, 1, g, bishop, 3)
	if len(moves) != 3 {
		t.Errorf("corner bishop range 3 = %d moves, want 3", len(moves))
	}
	for _, want := range []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}} {
		if !moves[want] {
			t.Errorf("expected move %v missing", want)
		}
	}
}
