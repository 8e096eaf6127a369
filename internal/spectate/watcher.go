package spectate

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/orbitdefense/internal/loop/config"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Watcher is one websocket connection receiving demo frames.
type Watcher struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades the request and streams snapshots until the peer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	wt := &Watcher{hub: h, conn: conn, send: make(chan []byte, config.SpectateSendBuffer)}
	h.register(wt)

	go wt.writePump()
	wt.readPump()
}

// readPump discards anything the watcher sends and keeps the read deadline
// alive on pongs. It returns once the connection fails.
func (w *Watcher) readPump() {
	defer func() {
		w.hub.unregister(w)
		if err := w.conn.Close(); err != nil {
			w.hub.log.WithError(err).Debug("close websocket")
		}
	}()

	w.conn.SetReadLimit(maxMessageSize)
	if err := w.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		w.hub.log.WithError(err).Warn("failed to set read deadline")
	}
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				w.hub.log.WithError(err).Warn("websocket read")
			}
			return
		}
	}
}

// writePump sends queued frames and pings.
func (w *Watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = w.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				w.hub.log.WithError(err).Debug("websocket write")
				return
			}
		case <-ticker.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
