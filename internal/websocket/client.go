package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one open view of the family board. Views only listen.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run forwards queued changes to the view until it disconnects, a write
// fails, or ctx ends.
func (c *Client) Run(ctx context.Context) error {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	// CloseRead discards anything the view sends and cancels ctx once the
	// peer closes.
	ctx = c.conn.CloseRead(ctx)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.Close(ws.StatusNormalClosure, "")
			return ctx.Err()
		case data, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "")
				return nil
			}
			if err := c.write(ctx, data); err != nil {
				return err
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return err
			}
		}
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, data)
}
