package engine

// Pill positions are stored as [2]Location. For a horizontal pill index 0 is
// the left half; for a vertical pill index 0 is the top half.

// spawnLocations returns where a new pill enters the board.
func spawnLocations(width int) [2]Location {
	return [2]Location{Loc(1, width/2-1), Loc(1, width/2)}
}

// isVertical reports whether the pill at p stands upright.
func isVertical(g Grid, p [2]Location) bool {
	return g.At(p[0]).Type == PillTop
}

// placePill writes both halves onto a private grid copy.
func placePill(g Grid, p [2]Location, a, b GridObject) {
	g.set(p[0], a)
	g.set(p[1], b)
}

// fits reports whether every destination is on the board and either Empty or
// currently occupied by the pill itself.
func fits(g Grid, own [2]Location, dest [2]Location) bool {
	for _, loc := range dest {
		obj, ok := g.Get(loc)
		if !ok {
			return false
		}
		if obj.IsEmpty() || loc == own[0] || loc == own[1] {
			continue
		}
		return false
	}
	return true
}

// shiftPill translates the pill by (dRow, dCol). It returns the new grid and
// position, or ok=false when the move is blocked.
func shiftPill(g Grid, p [2]Location, dRow, dCol int) (Grid, [2]Location, bool) {
	dest := [2]Location{p[0].Add(dRow, dCol), p[1].Add(dRow, dCol)}
	if !fits(g, p, dest) {
		return g, p, false
	}
	a, b := g.At(p[0]), g.At(p[1])
	next := g.clone()
	next.set(p[0], EmptyObject())
	next.set(p[1], EmptyObject())
	placePill(next, dest, a, b)
	return next, dest, true
}

// movePill applies a directional move.
func movePill(g Grid, p [2]Location, d Direction) (Grid, [2]Location, bool) {
	dRow, dCol, err := DeltaRowCol(d, 1)
	if err != nil {
		return g, p, false
	}
	return shiftPill(g, p, dRow, dCol)
}

// hardDrop moves the pill down until it rests.
func hardDrop(g Grid, p [2]Location) (Grid, [2]Location) {
	for {
		next, np, ok := shiftPill(g, p, 1, 0)
		if !ok {
			return g, p
		}
		g, p = next, np
	}
}

// rotatePill turns the pill a quarter turn without wall kicks.
//
// A horizontal pill at (r,c),(r,c+1) stands up on (r-1,c),(r,c). Clockwise
// puts the left color on top, counter-clockwise puts it at the bottom.
// A vertical pill at (r-1,c),(r,c) lies down on (r,c),(r,c+1). Clockwise
// moves the top color to the right, counter-clockwise to the left.
func rotatePill(g Grid, p [2]Location, clockwise bool) (Grid, [2]Location, bool) {
	first, second := g.At(p[0]).Color, g.At(p[1]).Color

	var dest [2]Location
	var a, b GridObject
	if isVertical(g, p) {
		bottom := p[1]
		dest = [2]Location{bottom, bottom.Add(0, 1)}
		if clockwise {
			a, b = Obj(PillLeft, second), Obj(PillRight, first)
		} else {
			a, b = Obj(PillLeft, first), Obj(PillRight, second)
		}
	} else {
		left := p[0]
		dest = [2]Location{left.Add(-1, 0), left}
		if clockwise {
			a, b = Obj(PillTop, first), Obj(PillBottom, second)
		} else {
			a, b = Obj(PillTop, second), Obj(PillBottom, first)
		}
	}

	if !fits(g, p, dest) {
		return g, p, false
	}
	next := g.clone()
	next.set(p[0], EmptyObject())
	next.set(p[1], EmptyObject())
	placePill(next, dest, a, b)
	return next, dest, true
}
