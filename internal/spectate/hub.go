// Package spectate streams a running game to websocket viewers. Frames are
// encoded game states, one text message per tick.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Hub fans frames out to every connected viewer. Slow viewers lose frames
// instead of stalling the game.
type Hub struct {
	log      *log.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	// readTimeout drops viewers that stop answering pings. Pings go out
	// every readTimeout/2.
	readTimeout time.Duration

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte // Latest frame, sent to viewers as they join
	dropped int
}

type client struct {
	id  string
	out chan []byte
}

// NewHub creates a hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		log:         logger,
		readTimeout: readTimeout,
		clients:     make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames were dropped for slow viewers.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Broadcast queues a frame for every viewer without blocking.
func (h *Hub) Broadcast(frame string) {
	b := []byte(frame)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = b
	for c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.dropped++
		}
	}
}

// Started implements dario.Observer.
func (h *Hub) Started(opts engine.Options) {
	h.log.Debug("game started", "seed", opts.InitialSeed, "level", opts.Level)
}

// Ticked implements dario.Observer by broadcasting the encoded state.
func (h *Hub) Ticked(_ []engine.Event, _ []engine.MoveInputEvent, st engine.GameState) {
	if h.Clients() == 0 {
		return
	}
	frame, err := encoding.EncodeGameState(st)
	if err != nil {
		h.log.Error("encode state", "err", err)
		return
	}
	h.Broadcast(frame)
}

func (h *Hub) join() *client {
	c := &client{
		id:  fmt.Sprintf("V%d", h.nextID.Add(1)),
		out: make(chan []byte, clientBuffer),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.out <- h.last
	}
	return c
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Handler upgrades requests to websocket viewers.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.Close()

		c := h.join()
		defer h.leave(c)
		h.log.Info("viewer connected", "id", c.id, "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			ping := time.NewTicker(h.readTimeout / 2)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
						cancel()
						return
					}
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Viewers send nothing; reading only notices closes and pongs.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		cancel()
		<-done

		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second))
		h.log.Info("viewer disconnected", "id", c.id)
	}
}

// ListenAndServe serves viewers on addr at /ws until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	}
}
