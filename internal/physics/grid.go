package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded (non-wrapping) area. Objects are inserted by position and index, then
// nearby objects can be queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	origin      Vec2    // bottom-left corner of the covered area
	invCellSize float64 // 1 / cellSize
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]).
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the rectangle [min, max].
// Positions outside the rectangle are clamped into the border cells.
func NewSpatialGrid(min, max Vec2, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil((max.X - min.X) / cellSize))
	rows := int(math.Ceil((max.Y - min.Y) / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		origin:      min,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(pos Vec2, index int) {
	col, row := g.posToCell(pos)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around pos. Cells beyond the grid edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(pos Vec2, fn func(index int) bool) {
	col, row := g.posToCell(pos)

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts a position to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(pos Vec2) (col, row int) {
	col = int(math.Floor((pos.X - g.origin.X) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((pos.Y - g.origin.Y) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
