package spectate

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dario/internal/games/dario/encoding"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

// Watch connects to a hub and calls fn with every decoded frame until ctx is
// cancelled or the hub goes away. Frames that fail to decode are logged and
// skipped. A nil logger discards log output.
func Watch(ctx context.Context, url string, logger *log.Logger, fn func(engine.GameState)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("spectate: dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				return nil
			default:
				return fmt.Errorf("spectate: read: %w", err)
			}
		}

		st, err := encoding.DecodeGameState(string(msg))
		if err != nil {
			var de *encoding.DecodeError
			if logger != nil && errors.As(err, &de) {
				logger.Warn("dropping corrupt frame", "codec", de.Codec, "reason", de.Reason)
			} else if logger != nil {
				logger.Warn("dropping corrupt frame", "err", err)
			}
			continue
		}
		fn(st)
	}
}
