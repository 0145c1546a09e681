package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const ( // ping pong(2-way heartbeat) to keep connection alive
	WriteWait      = 10 * time.Second    // max time to write a message to the peer
	PongWait       = 60 * time.Second    // no pong within this = dead connection
	PingPeriod     = (PongWait * 9) / 10 // ping before pong wait expires
	MaxMessageSize = 512                 // maximum message size allowed from peer
	sendBuffer     = 32
)

// Client is one live subscriber of a review.
type Client struct {
	reviewID string
	userID   string
	conn     *websocket.Conn
	send     chan []byte // owned by the hub, closed when the client is dropped
	hub      *Hub
}

func NewClient(reviewID, userID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		reviewID: reviewID,
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		hub:      hub,
	}
}

// ReadPump only watches for pongs and disconnects; inbound frames are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump drains send and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
