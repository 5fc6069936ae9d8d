package engine

const (
	// MaxViruses caps the number of viruses placed on a board.
	MaxViruses = 84

	// PillSequenceLength is how many pills are pre-rolled per game. The
	// sequence wraps around once exhausted.
	PillSequenceLength = 128

	virusStream = "viruses"
	pillStream  = "pills"
)

// VirusCount returns how many viruses a level starts with.
func VirusCount(level int) int {
	if level < 0 {
		level = 0
	}
	n := 4 * (level + 1)
	if n > MaxViruses {
		n = MaxViruses
	}
	return n
}

// emptyTopRows returns how many visible rows at the top of the board stay free
// of viruses.
func emptyTopRows(level int) int {
	switch {
	case level < 15:
		return 6
	case level < 17:
		return 5
	case level < 19:
		return 4
	default:
		return 3
	}
}

// GenerateViruses builds the starting grid for the given options.
//
// Placement picks a random cell in the virus area, scans forward to the next
// empty one and tries a random color, cycling through colors until one does
// not equal the cell two steps away in any direction. If no color fits, the
// scan continues with the next empty cell. A full pass without a placement
// ends generation early.
func GenerateViruses(opts Options) Grid {
	g := NewGrid(opts.Height+1, opts.Width)
	rng := NewStreamRNG(opts.InitialSeed, virusStream)

	// Row 0 is hidden; the visible board is rows 1..Height.
	firstRow := 1 + emptyTopRows(opts.Level)
	if firstRow > opts.Height {
		firstRow = opts.Height
	}
	area := (opts.Height + 1 - firstRow) * opts.Width
	if area <= 0 {
		return g
	}

	want := VirusCount(opts.Level)
	if want > area {
		want = area
	}

	cellAt := func(i int) Location {
		return Loc(firstRow+i/opts.Width, i%opts.Width)
	}

	for placed := 0; placed < want; placed++ {
		start := rng.Intn(area)
		color := rng.Color()
		ok := false
		for step := 0; step < area && !ok; step++ {
			loc := cellAt((start + step) % area)
			if !g.At(loc).IsEmpty() {
				continue
			}
			if c, fits := pickVirusColor(g, loc, color); fits {
				g.set(loc, Obj(Virus, c))
				ok = true
			}
		}
		if !ok {
			break
		}
	}
	return g
}

// pickVirusColor starts at first and cycles through the colors, returning the
// first one that differs from every cell two steps away.
func pickVirusColor(g Grid, loc Location, first Color) (Color, bool) {
	n := g.Neighbors(loc, 2)
	start := int(first) - 1
	for i := 0; i < len(Colors); i++ {
		c := Colors[(start+i)%len(Colors)]
		if n.Up.Color == c || n.Down.Color == c || n.Left.Color == c || n.Right.Color == c {
			continue
		}
		return c, true
	}
	return ColorNone, false
}

// GeneratePillSequence pre-rolls the colors of every pill in a game.
func GeneratePillSequence(seed string) [][2]Color {
	rng := NewStreamRNG(seed, pillStream)
	seq := make([][2]Color, PillSequenceLength)
	for i := range seq {
		seq[i] = [2]Color{rng.Color(), rng.Color()}
	}
	return seq
}
