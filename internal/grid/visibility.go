package grid

// Source is a visibility source: a position and how far it can see.
type Source struct {
	X, Y  int
	Sight int
}

// UpdateVisibility recomputes the Visible flag of every cell from the given
// sources. A cell is visible when at least one source within sight range has
// an unblocked line to it. Cells seen once latch Explored permanently;
// Explored never reverts.
func (g *Grid) UpdateVisibility(sources []Source) {
	for y := 1; y <= g.Height; y++ {
		for x := 1; x <= g.Width; x++ {
			cell, _ := g.Tile(x, y)
			cell.Visible = false
			for _, s := range sources {
				if !g.InBounds(s.X, s.Y) {
					continue
				}
				if chebyshev(s.X, s.Y, x, y) > s.Sight {
					continue
				}
				if g.HasLineOfSight(s.X, s.Y, x, y) {
					cell.Visible = true
					cell.Explored = true
					break
				}
			}
		}
	}
}

// HasLineOfSight returns true if no opaque cell lies strictly between
// (x0,y0) and (x1,y1). The endpoints themselves never block the line, so a
// wall cell is visible from an adjacent floor cell.
func (g *Grid) HasLineOfSight(x0, y0, x1, y1 int) bool {
	for _, c := range TraceLine(x0, y0, x1, y1) {
		if c.X == x0 && c.Y == y0 {
			continue
		}
		if c.X == x1 && c.Y == y1 {
			continue
		}
		cell, ok := g.Tile(c.X, c.Y)
		if !ok {
			return false
		}
		if !cell.Terrain.IsTransparent() {
			return false
		}
	}
	return true
}

// TraceLine returns the cells of the integer line from (x0,y0) to (x1,y1)
// inclusive, using Bresenham's algorithm.
func TraceLine(x0, y0, x1, y1 int) []Coord {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	var line []Coord
	err := dx + dy
	x, y := x0, y0
	for {
		line = append(line, Coord{X: x, Y: y})
		if x == x1 && y == y1 {
			return line
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// chebyshev returns the chessboard distance between two positions.
func chebyshev(x0, y0, x1, y1 int) int {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
