package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// Recorder writes a replay. It implements dario.Observer; write errors are
// kept and reported by Close.
type Recorder struct {
	mu     sync.Mutex
	closer io.Closer // Underlying file, if the recorder owns it
	enc    *zstd.Encoder
	w      *bufio.Writer
	err    error

	games int
	ticks int
	last  *engine.GameState
}

// Create records to a new file at path.
func Create(path string, h Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewRecorder records to w. Closing the recorder does not close w.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	line, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if _, err := validateHeader(line); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	r := &Recorder{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}
	r.writeLine(line)
	return r, r.err
}

// Started implements dario.Observer.
func (r *Recorder) Started(opts engine.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games++
	r.write(entry{Start: &Start{
		Options: encoding.EncodeOptions(opts),
		Seed:    opts.InitialSeed,
	}})
}

// Ticked implements dario.Observer.
func (r *Recorder) Ticked(control []engine.Event, events []engine.MoveInputEvent, st engine.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var e entry
	for _, ev := range control {
		e.Control = append(e.Control, ev.String())
	}
	q, err := encoding.EncodeMoveQueue(events)
	if err != nil {
		r.fail(err)
		return
	}
	e.Moves = q

	r.ticks++
	r.last = &st
	r.write(e)
}

// Close writes the end record and flushes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last != nil {
		state, err := encoding.EncodeGameState(*r.last)
		if err != nil {
			r.fail(err)
		} else {
			r.write(entry{End: &Footer{
				Games:  r.games,
				Ticks:  r.ticks,
				State:  state,
				Digest: Digest(state),
			}})
		}
	}

	if err := r.w.Flush(); err != nil {
		r.fail(err)
	}
	if err := r.enc.Close(); err != nil {
		r.fail(err)
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			r.fail(err)
		}
	}
	return r.err
}

func (r *Recorder) write(e entry) {
	line, err := json.Marshal(e)
	if err != nil {
		r.fail(err)
		return
	}
	r.writeLine(line)
}

func (r *Recorder) writeLine(line []byte) {
	if r.err != nil {
		return
	}
	if _, err := r.w.Write(line); err != nil {
		r.fail(err)
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.fail(err)
	}
}

func (r *Recorder) fail(err error) {
	if r.err == nil {
		r.err = fmt.Errorf("replay: %w", err)
	}
}
