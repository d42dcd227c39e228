package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/match"
	"github.com/samdwyer/gridclash/internal/rules"
	"github.com/samdwyer/gridclash/internal/unit"
)

// Renderer draws the match state to the screen. It is a read-only consumer
// of the core: grid visibility and terrain, unit positions and stats, and the
// scheduler's phase and action points.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// View is everything the renderer needs for one frame.
type View struct {
	Match      *match.Match
	CursorX    int
	CursorY    int
	Selected   *unit.Unit
	Moves      rules.CoordSet
	Targets    rules.TargetSet
	StatusLine string
}

// Render draws one frame: the fogged grid, units, overlays for the selected
// unit's moves and targets, and the HUD.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	g := v.Match.Grid()
	roster := v.Match.Roster()

	for y := 1; y <= g.Height; y++ {
		for x := 1; x <= g.Width; x++ {
			cell, _ := g.Tile(x, y)
			sx, sy := x-1, y-1

			if !cell.Explored {
				r.screen.SetContent(sx, sy, ' ', tcell.StyleDefault)
				continue
			}

			style := r.terrainStyle(cell.Terrain, cell.Visible)
			glyph := cell.Terrain.Rune()

			if cell.Visible && cell.Occupant != "" {
				if u := roster.Get(cell.Occupant); u != nil && u.IsAlive() {
					glyph = u.Glyph
					style = tcell.StyleDefault.Foreground(u.Color)
					if u.Faction == unit.FactionEnemy {
						style = style.Bold(true)
					}
				}
			}

			coord := grid.Coord{X: x, Y: y}
			if v.Moves != nil && v.Moves[coord] {
				style = style.Background(tcell.ColorDarkBlue)
			}
			if v.Targets != nil {
				if _, ok := v.Targets[coord]; ok {
					style = style.Background(tcell.ColorDarkRed)
				}
			}
			if x == v.CursorX && y == v.CursorY {
				style = style.Reverse(true)
			}

			r.screen.SetContent(sx, sy, glyph, style)
		}
	}

	r.renderHUD(v, g.Height)
	r.screen.Show()
}

// renderHUD draws the status rows under the grid: turn state, selection, and
// the tail of the combat log.
func (r *Renderer) renderHUD(v View, gridHeight int) {
	sched := v.Match.Scheduler()
	row := gridHeight + 1

	header := fmt.Sprintf("Round %d  [%s]", sched.Round(), sched.Phase())
	if active, ok := sched.ActiveUnit(); ok {
		header += fmt.Sprintf("  %s (%s)  AP %d/%d",
			active.Name, active.Faction, sched.ActionPoints(), sched.MaxActionPoints())
	}
	if winner, ok := sched.Winner(); ok {
		header = fmt.Sprintf("GAME OVER - %s wins", winner)
	}
	r.renderLine(header, row, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	row++

	if v.Selected != nil {
		s := v.Selected.Stats
		line := fmt.Sprintf("%s  HP %d/%d  ATK %d  DEF %d  %s",
			v.Selected.Name, s.Health, s.MaxHealth, s.Attack, s.Defense, v.Selected.Pattern)
		r.renderLine(line, row, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
	row++

	if v.StatusLine != "" {
		r.renderLine(v.StatusLine, row, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	row++

	log := v.Match.Log()
	start := len(log) - 4
	if start < 0 {
		start = 0
	}
	for _, line := range log[start:] {
		r.renderLine(line, row, tcell.StyleDefault.Foreground(tcell.ColorGray))
		row++
	}
}

// renderLine writes a single text line.
func (r *Renderer) renderLine(msg string, y int, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}

// terrainStyle returns the style for a terrain cell, dimmed when only
// explored rather than currently visible.
func (r *Renderer) terrainStyle(t grid.TerrainKind, visible bool) tcell.Style {
	style := tcell.StyleDefault
	switch t {
	case grid.TerrainWall:
		style = style.Foreground(tcell.ColorDarkGray)
	case grid.TerrainForest:
		style = style.Foreground(tcell.ColorGreen)
	case grid.TerrainWater:
		style = style.Foreground(tcell.ColorBlue)
	default:
		style = style.Foreground(tcell.ColorGray)
	}
	if !visible {
		style = style.Dim(true)
	}
	return style
}
