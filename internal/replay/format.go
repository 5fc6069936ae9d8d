// Package replay records games to zstd-compressed JSONL files and plays them
// back through the engine.
//
// A file holds a header line, then one line per engine event: a start line
// for every new game (restart or marathon level), a tick line with the mode
// events and move queue of every tick, and a final end line carrying the
// encoded final state and its digest.
package replay

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// Version is the current file format version.
const Version = 1

var (
	ErrBadHeader      = errors.New("replay: bad header")
	ErrNoFooter       = errors.New("replay: file has no end record")
	ErrDigestMismatch = errors.New("replay: final state differs from the recording")
)

//go:embed header.schema.json
var headerSchemaJSON string

var headerSchema = jsonschema.MustCompileString("header.schema.json", headerSchemaJSON)

// Header is the first line of a replay.
type Header struct {
	Version int            `json:"version"`
	Game    string         `json:"game"`
	Created string         `json:"created,omitempty"`
	Repeat  map[string]int `json:"repeat"` // Repeat interval per move code
}

// NewHeader builds a header for a game recorded with the given intervals.
// The header stores the intervals the engine will use, defaults included.
func NewHeader(game string, intervals engine.RepeatIntervals) (Header, error) {
	intervals = intervals.WithDefaults()
	h := Header{
		Version: Version,
		Game:    game,
		Repeat:  make(map[string]int, len(intervals)),
	}
	for in, n := range intervals {
		ch, err := encoding.EncodeMoveInput(in)
		if err != nil {
			return Header{}, err
		}
		h.Repeat[string(ch)] = n
	}
	return h, nil
}

// Intervals decodes the repeat table.
func (h Header) Intervals() (engine.RepeatIntervals, error) {
	out := make(engine.RepeatIntervals, len(h.Repeat))
	for k, n := range h.Repeat {
		if len(k) != 1 {
			return nil, fmt.Errorf("%w: repeat key %q", ErrBadHeader, k)
		}
		in, err := encoding.DecodeMoveInput(k[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
		}
		out[in] = n
	}
	return out, nil
}

// validateHeader checks a raw header line against the schema.
func validateHeader(line []byte) (Header, error) {
	var raw any
	if err := json.Unmarshal(line, &raw); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if err := headerSchema.Validate(raw); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	return h, nil
}

// Start opens a new game within the replay.
type Start struct {
	Options string `json:"options"` // encoding.EncodeOptions
	Seed    string `json:"seed"`
}

// Footer closes a replay.
type Footer struct {
	Games  int    `json:"games"`
	Ticks  int    `json:"ticks"`
	State  string `json:"state"` // Encoded final state
	Digest string `json:"digest"`
}

// entry is one line after the header. Exactly one of Start, End or the tick
// fields is used; an idle tick is an empty object.
type entry struct {
	Start   *Start   `json:"start,omitempty"`
	End     *Footer  `json:"end,omitempty"`
	Control []string `json:"c,omitempty"`
	Moves   string   `json:"q,omitempty"`
}

// Digest returns the hex SHA-256 of an encoded state.
func Digest(encodedState string) string {
	sum := sha256.Sum256([]byte(encodedState))
	return hex.EncodeToString(sum[:])
}
