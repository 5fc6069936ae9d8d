package engine

import "fmt"

// Grid is the playfield as a rectangular value.
// Cells are stored in row-major order: index = row*cols + col.
// Row 0 is the hidden spawn row.
//
// A Grid is never modified once it has been handed to a caller; every
// mutating helper returns a fresh copy. Readers may keep old snapshots.
type Grid struct {
	rows  int
	cols  int
	cells []GridObject
}

// NewGrid creates a grid of the given dimensions with every cell Empty.
func NewGrid(rows, cols int) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]GridObject, rows*cols),
	}
}

// GridFromRows builds a grid from nested rows.
// Returns an error if the rows are not rectangular.
func GridFromRows(rows [][]GridObject) (Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("engine: row %d has %d cells, expected %d", r, len(row), cols)
		}
		copy(g.cells[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// Rows returns the number of rows, including the hidden spawn row.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	return g.cols
}

func (g Grid) index(loc Location) int {
	return loc.Row*g.cols + loc.Col
}

// InBounds returns true if the location is within the grid boundaries.
func (g Grid) InBounds(loc Location) bool {
	return loc.Row >= 0 && loc.Row < g.rows && loc.Col >= 0 && loc.Col < g.cols
}

// Get returns the object at loc. The second result is false (and the object
// is the zero value) when loc is outside the grid.
func (g Grid) Get(loc Location) (GridObject, bool) {
	if !g.InBounds(loc) {
		return GridObject{}, false
	}
	return g.cells[g.index(loc)], true
}

// At returns the object at loc, or Empty when out of bounds.
func (g Grid) At(loc Location) GridObject {
	obj, _ := g.Get(loc)
	return obj
}

// Row returns a copy of a single row.
func (g Grid) Row(r int) []GridObject {
	if r < 0 || r >= g.rows {
		return nil
	}
	row := make([]GridObject, g.cols)
	copy(row, g.cells[r*g.cols:(r+1)*g.cols])
	return row
}

// Set returns a copy of the grid with loc replaced by obj.
// Out-of-bounds locations return an unchanged copy.
func (g Grid) Set(loc Location, obj GridObject) Grid {
	next := g.clone()
	next.set(loc, obj)
	return next
}

// clone returns a deep copy. The copy is private to the caller until it is
// returned, so it may be mutated with set.
func (g Grid) clone() Grid {
	cells := make([]GridObject, len(g.cells))
	copy(cells, g.cells)
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

func (g Grid) set(loc Location, obj GridObject) {
	if g.InBounds(loc) {
		g.cells[g.index(loc)] = obj
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g Grid) Equal(other Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// Neighbors holds the four direct neighbors of a cell. A neighbor outside the
// grid has its OK flag cleared.
type Neighbors struct {
	Up, Down, Left, Right         GridObject
	UpOK, DownOK, LeftOK, RightOK bool
}

// In returns the neighbor in direction d.
func (n Neighbors) In(d Direction) (GridObject, bool) {
	switch d {
	case Up:
		return n.Up, n.UpOK
	case Down:
		return n.Down, n.DownOK
	case Left:
		return n.Left, n.LeftOK
	case Right:
		return n.Right, n.RightOK
	default:
		return GridObject{}, false
	}
}

// Neighbors returns the cells distance steps away from loc in each direction.
func (g Grid) Neighbors(loc Location, distance int) Neighbors {
	var n Neighbors
	n.Up, n.UpOK = g.Get(loc.Add(-distance, 0))
	n.Down, n.DownOK = g.Get(loc.Add(distance, 0))
	n.Left, n.LeftOK = g.Get(loc.Add(0, -distance))
	n.Right, n.RightOK = g.Get(loc.Add(0, distance))
	return n
}

// CanMove reports whether the neighbor of loc in direction d exists and is Empty.
func (g Grid) CanMove(loc Location, d Direction) bool {
	obj, ok := g.Neighbors(loc, 1).In(d)
	return ok && obj.IsEmpty()
}

// DeltaRowCol returns the (dRow, dCol) offset of a move in direction d.
// Up 1 is (-1, 0).
func DeltaRowCol(d Direction, distance int) (dRow, dCol int, err error) {
	switch d {
	case Up:
		return -distance, 0, nil
	case Down:
		return distance, 0, nil
	case Left:
		return 0, -distance, nil
	case Right:
		return 0, distance, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}
}

// HasViruses returns true if any cell holds a virus.
func (g Grid) HasViruses() bool {
	for _, cell := range g.cells {
		if cell.IsVirus() {
			return true
		}
	}
	return false
}

// CountViruses returns the number of virus cells.
func (g Grid) CountViruses() int {
	count := 0
	for _, cell := range g.cells {
		if cell.IsVirus() {
			count++
		}
	}
	return count
}

// ClearDestroyed returns a copy with every Destroyed cell turned Empty.
// The second result reports whether anything changed.
func (g Grid) ClearDestroyed() (Grid, bool) {
	next := g.clone()
	changed := false
	for i, cell := range next.cells {
		if cell.Type == Destroyed {
			next.cells[i] = EmptyObject()
			changed = true
		}
	}
	return next, changed
}
