package grid

// pathNeighbors is the 4-neighbour expansion order for pathfinding. The order
// is fixed so paths are deterministic for a given board.
var pathNeighbors = [4]Coord{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// FindPath returns the shortest orthogonal path from (x0,y0) to (x1,y1) using
// breadth-first search over uniform-cost cells. Intermediate cells must be
// walkable and unoccupied; the destination may be occupied so callers can
// path up to a target. The returned path excludes the start cell and ends at
// the destination. The second return is false when no path exists.
func (g *Grid) FindPath(x0, y0, x1, y1 int) ([]Coord, bool) {
	if !g.InBounds(x0, y0) || !g.InBounds(x1, y1) {
		return nil, false
	}
	destCell, _ := g.Tile(x1, y1)
	if !destCell.IsWalkable() {
		return nil, false
	}

	start := Coord{X: x0, Y: y0}
	dest := Coord{X: x1, Y: y1}
	if start == dest {
		return []Coord{}, true
	}

	cameFrom := map[Coord]Coord{start: start}
	queue := []Coord{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range pathNeighbors {
			next := Coord{X: current.X + d.X, Y: current.Y + d.Y}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cell, ok := g.Tile(next.X, next.Y)
			if !ok || !cell.IsWalkable() {
				continue
			}
			// Occupied cells block the path unless they are the destination.
			if cell.IsOccupied() && next != dest {
				continue
			}
			cameFrom[next] = current
			if next == dest {
				return rebuildPath(cameFrom, start, dest), true
			}
			queue = append(queue, next)
		}
	}

	return nil, false
}

// rebuildPath walks the breadcrumb map back from dest to start and reverses
// the result.
func rebuildPath(cameFrom map[Coord]Coord, start, dest Coord) []Coord {
	var path []Coord
	for c := dest; c != start; c = cameFrom[c] {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
