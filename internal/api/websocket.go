package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kataras/golog"

	"remotepad/internal/protocol"
)

const (
	readLimit  = 4096
	readWait   = 60 * time.Second
	writeWait  = 10 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for now as this is a local network tool
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session is one connected touchpad client. The channel is receive-only from
// the server's perspective: the write pump only emits protocol-level pings.
type session struct {
	server *Server
	conn   *websocket.Conn
	log    *golog.Logger
	done   chan struct{}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("failed to upgrade connection from %s: %v", r.RemoteAddr, err)
		return
	}

	c := &session{
		server: s,
		conn:   conn,
		log:    golog.Child("[ws " + r.RemoteAddr + "]"),
		done:   make(chan struct{}),
	}

	n := s.sessions.Add(1)
	c.log.Infof("client connected, %d session(s) open", n)

	go c.writePump()
	go c.readPump()
}

// readPump decodes inbound frames and feeds the event queue. Decode failures
// drop the frame and keep the connection open; transport failures end the
// session; a closed queue (interpreter gone) ends the session on the next
// push.
func (c *session) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
		n := c.server.sessions.Add(-1)
		c.log.Infof("client disconnected, %d session(s) open", n)
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(readWait)); return nil })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warnf("read error: %v", err)
			}
			return
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			c.log.Debugf("dropping frame: %v", err)
			continue
		}

		if !c.server.queue.Push(ev) {
			c.log.Info("event pipeline stopped, closing session")
			return
		}
	}
}

// writePump keeps the connection alive with periodic pings; no application
// messages are ever sent back to the client.
func (c *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
