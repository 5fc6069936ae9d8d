package encoding

import (
	"strings"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// EncodeOptions writes every option except the seed as
// "o<level>,<baseSpeed>,<width>,<height>,<cascadeSpeed>,<destroyTicks>".
func EncodeOptions(o engine.Options) string {
	fields := []int{o.Level, o.BaseSpeed, o.Width, o.Height, o.CascadeSpeed, o.DestroyTicks}
	parts := make([]string, len(fields))
	for i, n := range fields {
		parts[i] = EncodeInt(n)
	}
	return "o" + strings.Join(parts, ",")
}

// DecodeOptions is the inverse of EncodeOptions. The seed is left empty.
func DecodeOptions(s string) (engine.Options, error) {
	const codec = "options"
	in := strings.TrimSpace(s)
	if !strings.HasPrefix(in, "o") {
		return engine.Options{}, decodeErr(codec, s, "missing 'o' prefix")
	}
	parts := strings.Split(in[1:], ",")
	if len(parts) != 6 {
		return engine.Options{}, decodeErr(codec, s, "want 6 fields, got %d", len(parts))
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		n, err := DecodeInt(p)
		if err != nil {
			return engine.Options{}, decodeErr(codec, s, "field %d: %q is not base 36", i, p)
		}
		vals[i] = n
	}
	return engine.Options{
		Level:        vals[0],
		BaseSpeed:    vals[1],
		Width:        vals[2],
		Height:       vals[3],
		CascadeSpeed: vals[4],
		DestroyTicks: vals[5],
	}, nil
}
