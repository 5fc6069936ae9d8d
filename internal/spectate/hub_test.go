package spectate

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

func testState(t *testing.T, ticks int) engine.GameState {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.InitialSeed = "spectate"
	g, err := engine.New(opts)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	for i := 0; i < ticks; i++ {
		g.Tick(nil)
	}
	return g.State()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub(nil)
	c := &client{id: "slow", out: make(chan []byte, 1)}
	h.clients[c] = struct{}{}

	h.Broadcast("one")
	h.Broadcast("two")
	h.Broadcast("three")

	if got := len(c.out); got != 1 {
		t.Errorf("queued = %d, want 1", got)
	}
	if got := string(<-c.out); got != "one" {
		t.Errorf("first frame = %q, want one", got)
	}
	if h.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", h.Dropped())
	}
}

func TestJoinGetsLatestFrame(t *testing.T) {
	h := NewHub(nil)
	h.Broadcast("latest")

	c := h.join()
	defer h.leave(c)
	if got := string(<-c.out); got != "latest" {
		t.Errorf("join frame = %q, want latest", got)
	}
}

func TestWatch(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan engine.GameState, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, url, nil, func(st engine.GameState) { got <- st })
	}()

	waitFor(t, "viewer", func() bool { return h.Clients() == 1 })

	first := testState(t, 2)
	second := testState(t, 40)
	h.Ticked(nil, nil, first)
	h.Broadcast("s-not-a-state")
	h.Ticked(nil, nil, second)

	for i, want := range []engine.GameState{first, second} {
		select {
		case st := <-got:
			if st.Frame != want.Frame || !st.Grid.Equal(want.Grid) {
				t.Errorf("frame %d: got frame %d, want %d", i, st.Frame, want.Frame)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	waitFor(t, "viewer to leave", func() bool { return h.Clients() == 0 })
}

func TestViewerOutlivesReadTimeout(t *testing.T) {
	h := NewHub(nil)
	h.readTimeout = 200 * time.Millisecond
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan engine.GameState, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, url, nil, func(st engine.GameState) { got <- st })
	}()
	waitFor(t, "viewer", func() bool { return h.Clients() == 1 })

	// Stay quiet for several read timeouts; pings must keep the viewer alive.
	time.Sleep(5 * h.readTimeout)
	if h.Clients() != 1 {
		t.Fatalf("Clients() = %d after idle period, want 1", h.Clients())
	}
	select {
	case err := <-done:
		t.Fatalf("Watch returned early: %v", err)
	default:
	}

	want := testState(t, 30)
	h.Ticked(nil, nil, want)
	select {
	case st := <-got:
		if st.Frame != want.Frame {
			t.Errorf("frame = %d, want %d", st.Frame, want.Frame)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer stopped receiving frames")
	}
}

func TestTickedWithoutViewers(t *testing.T) {
	h := NewHub(nil)
	h.Ticked(nil, nil, testState(t, 2))

	c := h.join()
	defer h.leave(c)
	if len(c.out) != 0 {
		t.Error("states should not be encoded without viewers")
	}
}

func TestWatchDialError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Watch(ctx, "ws://127.0.0.1:1/ws", nil, func(engine.GameState) {}); err == nil {
		t.Error("expected dial error")
	}
}
