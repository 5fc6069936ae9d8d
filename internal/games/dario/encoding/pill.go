package encoding

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// pillChars holds one character per ordered color pair, indexed by
// (a-1)*3 + (b-1).
const pillChars = "123456789"

// EncodePillColors returns the character for an ordered color pair.
func EncodePillColors(p [2]engine.Color) (byte, error) {
	if !p[0].Valid() || !p[1].Valid() {
		return 0, fmt.Errorf("%w: pill colors %s/%s", ErrEncode, p[0], p[1])
	}
	return pillChars[(int(p[0])-1)*3+int(p[1])-1], nil
}

// DecodePillColors is the inverse of EncodePillColors.
func DecodePillColors(ch byte) ([2]engine.Color, error) {
	i := strings.IndexByte(pillChars, ch)
	if i < 0 {
		return [2]engine.Color{}, decodeErr("pill", string(ch), "unknown character")
	}
	return [2]engine.Color{engine.Color(i/3 + 1), engine.Color(i%3 + 1)}, nil
}

// EncodePillSequence writes one character per pill.
func EncodePillSequence(seq [][2]engine.Color) (string, error) {
	var b strings.Builder
	b.Grow(len(seq))
	for _, p := range seq {
		ch, err := EncodePillColors(p)
		if err != nil {
			return "", err
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}

// DecodePillSequence is the inverse of EncodePillSequence.
func DecodePillSequence(s string) ([][2]engine.Color, error) {
	seq := make([][2]engine.Color, 0, len(s))
	for i := 0; i < len(s); i++ {
		p, err := DecodePillColors(s[i])
		if err != nil {
			return nil, decodeErr("pill sequence", s, "position %d: unknown character %q", i, s[i])
		}
		seq = append(seq, p)
	}
	return seq, nil
}
