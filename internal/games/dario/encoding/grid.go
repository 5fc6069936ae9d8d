package encoding

import (
	"strings"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// EncodeGrid writes a grid as a "g<rows>,<cols>:" header followed by one
// line per row. Dimensions are base 36.
func EncodeGrid(g engine.Grid) (string, error) {
	var b strings.Builder
	b.Grow(8 + g.Rows()*(g.Cols()+1))
	b.WriteByte('g')
	b.WriteString(EncodeInt(g.Rows()))
	b.WriteByte(',')
	b.WriteString(EncodeInt(g.Cols()))
	b.WriteByte(':')

	for r := 0; r < g.Rows(); r++ {
		b.WriteByte('\n')
		for _, obj := range g.Row(r) {
			ch, err := EncodeGridObject(obj)
			if err != nil {
				return "", err
			}
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

// DecodeGrid parses a grid written by EncodeGrid. Leading and trailing
// whitespace and per-line indentation are ignored, so grids can be written
// as indented literals in tests and fixtures.
func DecodeGrid(s string) (engine.Grid, error) {
	const codec = "grid"
	in := strings.TrimSpace(s)
	if !strings.HasPrefix(in, "g") {
		return engine.Grid{}, decodeErr(codec, s, "missing 'g' prefix")
	}
	colon := strings.IndexByte(in, ':')
	if colon < 0 {
		return engine.Grid{}, decodeErr(codec, s, "missing ':' after header")
	}
	dims := strings.Split(in[1:colon], ",")
	if len(dims) != 2 {
		return engine.Grid{}, decodeErr(codec, s, "header needs rows,cols")
	}
	rows, err := DecodeInt(strings.TrimSpace(dims[0]))
	if err != nil {
		return engine.Grid{}, decodeErr(codec, s, "bad row count %q", dims[0])
	}
	cols, err := DecodeInt(strings.TrimSpace(dims[1]))
	if err != nil {
		return engine.Grid{}, decodeErr(codec, s, "bad column count %q", dims[1])
	}
	if rows < 0 || cols < 0 {
		return engine.Grid{}, decodeErr(codec, s, "negative dimensions")
	}

	var lines []string
	for _, line := range strings.Split(in[colon+1:], "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != rows {
		return engine.Grid{}, decodeErr(codec, s, "header says %d rows, found %d", rows, len(lines))
	}

	cells := make([][]engine.GridObject, rows)
	for r, line := range lines {
		if len(line) != cols {
			return engine.Grid{}, decodeErr(codec, s, "row %d has %d cells, want %d", r, len(line), cols)
		}
		cells[r] = make([]engine.GridObject, cols)
		for c := 0; c < cols; c++ {
			obj, err := DecodeGridObject(line[c])
			if err != nil {
				return engine.Grid{}, decodeErr(codec, s, "row %d col %d: unknown character %q", r, c, line[c])
			}
			cells[r][c] = obj
		}
	}

	if rows == 0 {
		return engine.NewGrid(0, cols), nil
	}
	g, err := engine.GridFromRows(cells)
	if err != nil {
		return engine.Grid{}, decodeErr(codec, s, "%v", err)
	}
	return g, nil
}

// MustDecodeGrid is DecodeGrid for literals known to be valid. It panics on
// error.
func MustDecodeGrid(s string) engine.Grid {
	g, err := DecodeGrid(s)
	if err != nil {
		panic(err)
	}
	return g
}
