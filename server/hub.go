package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tiggercwh/go-dice/gameModel"
)

const writeWait = 5 * time.Second

type subscriber struct {
	conn *websocket.Conn
	send chan gameModel.Stats
}

// statsHub pushes stats snapshots to every connected websocket subscriber.
type statsHub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
}

func newStatsHub(allowed originPolicy) *statsHub {
	return &statsHub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			return allowed.allows(r.Header.Get("Origin"))
		}},
		subs: map[*subscriber]struct{}{},
	}
}

// broadcast never blocks; a subscriber that falls behind is dropped.
func (h *statsHub) broadcast(stats gameModel.Stats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.send <- stats:
		default:
			log.Printf("dropping slow stats subscriber %s", s.conn.RemoteAddr())
			delete(h.subs, s)
			close(s.send)
		}
	}
}

func (h *statsHub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

func (h *statsHub) serve(w http.ResponseWriter, r *http.Request, initial gameModel.Stats) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	s := &subscriber{conn: conn, send: make(chan gameModel.Stats, 16)}
	s.send <- initial
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	log.Printf("stats subscriber %s connected (request %s)", conn.RemoteAddr(), r.Header.Get("X-Request-ID"))

	go func() {
		defer conn.Close()
		for stats := range s.send {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(stats); err != nil {
				h.unregister(s)
				return
			}
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}()

	// Subscribers never send; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(s)
			return
		}
	}
}

func (h *statsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		delete(h.subs, s)
		close(s.send)
	}
}
