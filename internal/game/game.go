// Package game provides the interactive loop that turns terminal input into
// match commands and drives the enemy AI between player turns.
package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/match"
	"github.com/samdwyer/gridclash/internal/rules"
	"github.com/samdwyer/gridclash/internal/turn"
	"github.com/samdwyer/gridclash/internal/ui"
	"github.com/samdwyer/gridclash/internal/unit"
)

// Game wires the match core to the terminal viewer and input handling.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	match    *match.Match
	ai       *match.EnemyAI

	cursorX, cursorY int
	selectedID       string
	status           string
	running          bool
}

// New creates a game around an already-built match.
func New(m *match.Match) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		match:    m,
		ai:       match.NewEnemyAI(m),
		cursorX:  1,
		cursorY:  1,
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	g.match.Start()

	for g.running {
		g.driveEnemyTurns(ctx)
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// Close releases terminal resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// driveEnemyTurns lets the AI act whenever a non-player unit is up.
func (g *Game) driveEnemyTurns(ctx context.Context) {
	sched := g.match.Scheduler()
	for sched.Phase() == turn.PhaseAction && !sched.IsPlayerTurn() {
		g.ai.TakeTurn(ctx)
	}
}

// render draws the current frame, including overlays for the selection.
func (g *Game) render() {
	view := ui.View{
		Match:      g.match,
		CursorX:    g.cursorX,
		CursorY:    g.cursorY,
		StatusLine: g.status,
	}
	if selected := g.selectedUnit(); selected != nil {
		view.Selected = selected
		if moves, err := g.match.ValidMoves(selected.ID); err == nil {
			view.Moves = moves
		}
		if targets, err := g.match.ValidAttacks(selected.ID); err == nil {
			view.Targets = targets
		}
	}
	g.renderer.Render(view)
}

// handleInput processes a single terminal event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.selectedID = ""
		g.status = ""
	case tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(0, -1)
	case tcell.KeyDown:
		g.moveCursor(0, 1)
	case tcell.KeyLeft:
		g.moveCursor(-1, 0)
	case tcell.KeyRight:
		g.moveCursor(1, 0)

	case tcell.KeyEnter:
		g.confirm(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'e', 'E':
			g.endTurn()
		}
	}
}

// moveCursor shifts the cursor within grid bounds.
func (g *Game) moveCursor(dx, dy int) {
	nx, ny := g.cursorX+dx, g.cursorY+dy
	if g.match.Grid().InBounds(nx, ny) {
		g.cursorX, g.cursorY = nx, ny
	}
}

// confirm resolves an Enter press: select the active unit, or commit a move
// or attack at the cursor for the current selection.
func (g *Game) confirm(ctx context.Context) {
	active, ok := g.match.Scheduler().ActiveUnit()
	if !ok || active.Faction != unit.FactionPlayer {
		return
	}

	// Selecting the active unit under the cursor.
	if occupant := g.match.Grid().OccupantID(g.cursorX, g.cursorY); occupant == active.ID {
		g.selectedID = active.ID
		g.status = ""
		return
	}

	if g.selectedID == "" {
		g.status = "Select the active unit first."
		return
	}

	coord := grid.Coord{X: g.cursorX, Y: g.cursorY}
	targets, _ := g.match.ValidAttacks(g.selectedID)
	if _, isTarget := targets[coord]; isTarget {
		if _, err := g.match.Attack(ctx, g.selectedID, coord.X, coord.Y); err != nil {
			g.status = err.Error()
		} else {
			g.status = ""
		}
		g.clearSelectionIfTurnOver()
		return
	}

	moves, _ := g.match.ValidMoves(g.selectedID)
	if g.isMember(moves, coord) {
		if err := g.match.Move(g.selectedID, coord.X, coord.Y); err != nil {
			g.status = err.Error()
		} else {
			g.status = ""
		}
		g.clearSelectionIfTurnOver()
		return
	}

	g.status = "Not a legal move or target."
}

// endTurn ends the active player unit's turn.
func (g *Game) endTurn() {
	if active, ok := g.match.Scheduler().ActiveUnit(); ok && active.Faction == unit.FactionPlayer {
		g.match.EndTurn(active.ID)
		g.selectedID = ""
		g.status = ""
	}
}

// clearSelectionIfTurnOver drops the selection when the acted unit is no
// longer the active one.
func (g *Game) clearSelectionIfTurnOver() {
	active, ok := g.match.Scheduler().ActiveUnit()
	if !ok || active.ID != g.selectedID {
		g.selectedID = ""
	}
}

// selectedUnit resolves the current selection, dropping it if stale.
func (g *Game) selectedUnit() *unit.Unit {
	if g.selectedID == "" {
		return nil
	}
	u := g.match.Roster().Get(g.selectedID)
	if u == nil || !u.IsAlive() {
		g.selectedID = ""
		return nil
	}
	return u
}

// isMember reports set membership for a move set.
func (g *Game) isMember(set rules.CoordSet, c grid.Coord) bool {
	return set != nil && set[c]
}
