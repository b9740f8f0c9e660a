package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection bound to a player.
type Client struct {
	playerID string
	conn     *websocket.Conn
	send     chan Event

	closeOnce sync.Once
}

func newClient(playerID string, conn *websocket.Conn) *Client {
	return &Client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan Event, sendBufferSize),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// writePump drains the send queue onto the wire and keeps the connection
// alive with pings. Exits when the queue closes or a write fails.
func (c *Client) writePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hub.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				slog.Default().Debug("Realtime write failed", "playerID", c.playerID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames but keeps the pong deadline fresh. A
// client that stops answering pings is disconnected here.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister(c)
		c.close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
