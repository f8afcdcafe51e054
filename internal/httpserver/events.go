// internal/httpserver/events.go
//
// GET /game/{id}/events upgrades to a WebSocket and pushes every update of the
// game as {"type":...,"game":...,"result":...}. The first message is the
// current board with an empty type. Client messages are read and discarded;
// reading only keeps pongs flowing and notices the close.

package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runnerFor(w, r)
	if !ok {
		return
	}
	// Subscribe before the handshake completes so no update slips between the
	// snapshot and the stream.
	first, updates, cancel := run.Subscribe()
	defer cancel()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}

	go readPump(conn, cancel)
	writePump(conn, first, updates)
}

// readPump drains the socket until it fails, then ends the subscription.
func readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends first, then every update until the channel closes, pinging in between.
func writePump(conn *websocket.Conn, first session.Update, updates <-chan session.Update) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(first); err != nil {
		return
	}
	for {
		select {
		case u, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"))
				return
			}
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// checkOrigin accepts same-host pages, the configured client origin, and
// non-browser clients that send no Origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
