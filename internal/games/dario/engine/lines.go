package engine

// MatchLength is the minimum run of same-colored cells that clears.
const MatchLength = 4

// FindLines returns every maximal run of at least lineLength consecutive
// cells sharing the same color. Rows are scanned left to right first, then
// columns top to bottom. Cells without a color (Empty, Destroyed) break a run.
func FindLines(g Grid, lineLength int) [][]Location {
	var lines [][]Location

	for r := 0; r < g.rows; r++ {
		lines = appendRuns(lines, g, lineLength, g.cols, func(i int) Location {
			return Loc(r, i)
		})
	}
	for c := 0; c < g.cols; c++ {
		lines = appendRuns(lines, g, lineLength, g.rows, func(i int) Location {
			return Loc(i, c)
		})
	}
	return lines
}

// appendRuns scans one row or column of length n, addressed through at.
func appendRuns(lines [][]Location, g Grid, lineLength, n int, at func(int) Location) [][]Location {
	var run []Location
	runColor := ColorNone

	flush := func() {
		if len(run) >= lineLength {
			lines = append(lines, run)
		}
		run = nil
		runColor = ColorNone
	}

	for i := 0; i < n; i++ {
		loc := at(i)
		obj := g.At(loc)
		if !obj.Type.HasColor() {
			flush()
			continue
		}
		if obj.Color != runColor {
			flush()
			runColor = obj.Color
		}
		run = append(run, loc)
	}
	flush()
	return lines
}

// partnerOf returns where the other half of a pill half must sit and which
// type it must have.
func partnerOf(t ObjectType) (Direction, ObjectType, bool) {
	switch t {
	case PillLeft:
		return Right, PillRight, true
	case PillRight:
		return Left, PillLeft, true
	case PillTop:
		return Down, PillBottom, true
	case PillBottom:
		return Up, PillTop, true
	default:
		return 0, Empty, false
	}
}

// FindWidows returns the locations of pill halves whose partner cell does not
// hold the matching opposite half. Order is row-major.
func FindWidows(g Grid) []Location {
	var widows []Location
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			loc := Loc(r, c)
			obj := g.At(loc)
			dir, want, ok := partnerOf(obj.Type)
			if !ok {
				continue
			}
			other, inBounds := g.Neighbors(loc, 1).In(dir)
			if !inBounds || other.Type != want {
				widows = append(widows, loc)
			}
		}
	}
	return widows
}

// HasViruses returns true if g still holds at least one virus.
func HasViruses(g Grid) bool {
	return g.HasViruses()
}

// CountViruses returns the number of viruses in g.
func CountViruses(g Grid) int {
	return g.CountViruses()
}

// ConvertWidows returns a copy of g with every widow turned into a
// PillSegment of the same color.
func ConvertWidows(g Grid) Grid {
	widows := FindWidows(g)
	if len(widows) == 0 {
		return g
	}
	next := g.clone()
	for _, loc := range widows {
		next.set(loc, Obj(PillSegment, g.At(loc).Color))
	}
	return next
}

// ApplyGravity runs a single cascade step: every unsupported segment or pill
// drops by one row. Vertical pills fall as a unit when the cell under the
// bottom half is empty, horizontal pills only when both cells below are
// empty. Viruses never fall. The second result reports whether anything
// moved.
func ApplyGravity(g Grid) (Grid, bool) {
	next := g.clone()
	moved := false

	// Bottom-up so a cell vacated in this step can be filled by the cell
	// above it in the same step.
	for r := next.rows - 2; r >= 0; r-- {
		for c := 0; c < next.cols; c++ {
			loc := Loc(r, c)
			obj := next.At(loc)
			if !obj.CanFall() {
				continue
			}

			switch {
			case obj.Type == PillBottom && next.At(loc.Add(-1, 0)).Type == PillTop:
				if !next.CanMove(loc, Down) {
					continue
				}
				top := loc.Add(-1, 0)
				topObj := next.At(top)
				next.set(loc.Add(1, 0), obj)
				next.set(loc, topObj)
				next.set(top, EmptyObject())
				moved = true

			case obj.Type == PillTop && next.At(loc.Add(1, 0)).Type == PillBottom:
				// Moves together with its bottom half.
				continue

			case obj.Type == PillLeft && next.At(loc.Add(0, 1)).Type == PillRight:
				right := loc.Add(0, 1)
				if !next.CanMove(loc, Down) || !next.CanMove(right, Down) {
					c++ // the right half rests too
					continue
				}
				rightObj := next.At(right)
				next.set(loc.Add(1, 0), obj)
				next.set(right.Add(1, 0), rightObj)
				next.set(loc, EmptyObject())
				next.set(right, EmptyObject())
				moved = true
				c++

			default:
				if !next.CanMove(loc, Down) {
					continue
				}
				next.set(loc.Add(1, 0), obj)
				next.set(loc, EmptyObject())
				moved = true
			}
		}
	}

	if !moved {
		return g, false
	}
	return next, true
}
