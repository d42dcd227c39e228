// Package grid provides the authoritative spatial state of a match: a bounded
// cell map with occupancy, visibility, and geometric queries.
//
// Coordinates are 1-based: valid positions lie in [1,Width]x[1,Height].
// Anything outside is rejected by every operation.
package grid

// Coord is a grid position.
type Coord struct {
	X, Y int
}

// TerrainKind represents a single terrain type.
type TerrainKind rune

const (
	// TerrainFloor is open ground: walkable, does not block sight.
	TerrainFloor TerrainKind = '.'
	// TerrainWall is impassable and blocks sight.
	TerrainWall TerrainKind = '#'
	// TerrainForest is walkable but blocks sight.
	TerrainForest TerrainKind = 'T'
	// TerrainWater is impassable but does not block sight.
	TerrainWater TerrainKind = '~'
)

// IsWalkable returns true if units may occupy this terrain.
func (t TerrainKind) IsWalkable() bool {
	return t == TerrainFloor || t == TerrainForest
}

// IsTransparent returns true if sight lines pass through this terrain.
func (t TerrainKind) IsTransparent() bool {
	return t == TerrainFloor || t == TerrainWater
}

// Rune returns the terrain's display character.
func (t TerrainKind) Rune() rune {
	return rune(t)
}

// Cell is a single grid cell. Occupant is a unit id, empty when the cell is
// free; the grid never holds unit pointers.
type Cell struct {
	Terrain  TerrainKind
	Occupant string
	Visible  bool
	Explored bool
}

// IsWalkable returns true if the cell's terrain permits occupancy.
func (c *Cell) IsWalkable() bool {
	return c.Terrain.IsWalkable()
}

// IsOccupied returns true if a unit stands on the cell.
func (c *Cell) IsOccupied() bool {
	return c.Occupant != ""
}

// Grid is the bounded 2D cell map. It exclusively owns cell occupancy:
// placement, removal, and movement of units all go through it.
type Grid struct {
	Width  int
	Height int
	cells  [][]Cell
}

// New creates a grid of the given dimensions with all cells set to floor.
func New(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Terrain: TerrainFloor}
		}
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  cells,
	}
}

// InBounds reports whether (x,y) lies within [1,Width]x[1,Height].
func (g *Grid) InBounds(x, y int) bool {
	return x >= 1 && x <= g.Width && y >= 1 && y <= g.Height
}

// Tile returns the cell at (x,y), or (nil, false) when out of bounds.
func (g *Grid) Tile(x, y int) (*Cell, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.cells[y-1][x-1], true
}

// SetTerrain sets the terrain kind at (x,y). Out-of-bounds is a no-op.
func (g *Grid) SetTerrain(x, y int, kind TerrainKind) {
	if cell, ok := g.Tile(x, y); ok {
		cell.Terrain = kind
	}
}

// OccupantID returns the id of the unit at (x,y), or "" if the cell is empty
// or out of bounds.
func (g *Grid) OccupantID(x, y int) string {
	cell, ok := g.Tile(x, y)
	if !ok {
		return ""
	}
	return cell.Occupant
}

// Positioned is the minimal unit surface the grid needs: an id and a mutable
// recorded position. The unit package and test doubles both satisfy it.
type Positioned interface {
	// GetID returns the unit's roster id.
	GetID() string
	// Position returns the unit's recorded coordinates.
	Position() (int, int)
	// SetPosition mirrors a successful occupancy change onto the unit.
	SetPosition(x, y int)
}

// Place puts a unit at (x,y). It fails, with no mutation, if the target is
// out of bounds, non-walkable, or already occupied.
func (g *Grid) Place(u Positioned, x, y int) bool {
	cell, ok := g.Tile(x, y)
	if !ok {
		return false
	}
	if !cell.IsWalkable() || cell.IsOccupied() {
		return false
	}
	cell.Occupant = u.GetID()
	u.SetPosition(x, y)
	return true
}

// Remove clears the occupant at the unit's last known cell. It is a no-op if
// the unit is not the occupant there.
func (g *Grid) Remove(u Positioned) {
	x, y := u.Position()
	cell, ok := g.Tile(x, y)
	if !ok {
		return
	}
	if cell.Occupant == u.GetID() {
		cell.Occupant = ""
	}
}

// Move relocates a unit to (x,y) as an atomic remove-then-place. If placement
// at the destination fails, the unit stays at its original cell; occupancy is
// never lost or duplicated.
func (g *Grid) Move(u Positioned, x, y int) bool {
	destCell, ok := g.Tile(x, y)
	if !ok {
		return false
	}
	if !destCell.IsWalkable() || destCell.IsOccupied() {
		return false
	}

	g.Remove(u)
	destCell.Occupant = u.GetID()
	u.SetPosition(x, y)
	return true
}
