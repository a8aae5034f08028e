// Package network contains the outbound WebSocket client used to exercise a
// running server, plus small address helpers.
package network

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kataras/golog"

	"remotepad/internal/protocol"
)

// Client is a send-only WebSocket connection to a touchpad server. It backs
// the --probe mode: a quick way to verify the full pipeline on a host
// without picking up a phone.
type Client struct {
	addr string
	conn *websocket.Conn
	log  *golog.Logger
}

// NewClient creates a client for host:port.
func NewClient(addr string) *Client {
	return &Client{
		addr: addr,
		log:  golog.Child("[probe]"),
	}
}

// Connect dials the server's /ws endpoint.
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.addr, Path: "/ws"}
	c.log.Infof("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Send writes one event in the wire shape the web client uses.
func (c *Client) Send(ev protocol.ClientEvent) error {
	data, err := protocol.Encode(ev)
	if err != nil {
		return err
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// SendGestureBurst replays a synthetic session: a smooth right swipe, a
// two-finger scroll, a left click and a couple of key presses. Events are
// paced at a touch-like cadence so scroll throttling is observable.
func (c *Client) SendGestureBurst() error {
	move := func(dx, dy, sx, sy float64, touches int) protocol.ClientEvent {
		return protocol.MoveEvent{
			DX: dx, DY: dy, SX: sx, SY: sy,
			Touches: touches,
			Width:   1000, Height: 1000, X: 500, Y: 500,
		}
	}

	var burst []protocol.ClientEvent
	for i := 0; i < 20; i++ {
		burst = append(burst, move(4, 0, 0.3, 0, 1))
	}
	for i := 0; i < 10; i++ {
		burst = append(burst, move(0, 3, 0, 0.3, 2))
	}
	burst = append(burst,
		protocol.ClickEvent{Button: protocol.ButtonLeft},
		protocol.KeyEvent{Key: 'h'},
		protocol.KeyEvent{Key: 'i'},
	)

	for _, ev := range burst {
		if err := c.Send(ev); err != nil {
			return err
		}
		time.Sleep(15 * time.Millisecond)
	}

	c.log.Infof("sent %d events", len(burst))
	return nil
}
