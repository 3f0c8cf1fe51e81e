// Package collab relays local cursor and selection events to a collaboration
// server and re-emits remote ones for rendering. The channel carries no
// geometry authority: document merging happens elsewhere.
package collab

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"easel/internal/domain"
	"easel/internal/service"
)

// Message is the wire format for both directions.
type Message struct {
	Type      string       `json:"type"` // "cursor" | "selection"
	ClientID  string       `json:"clientId"`
	ProjectID string       `json:"projectId"`
	Cursor    domain.Point `json:"cursor,omitempty"`
	Selection []string     `json:"selection,omitempty"`
}

// Client is one websocket session. Sends are fire-and-forget: a failed write
// logs and drops the message, it never stalls the pointer-move hot path.
type Client struct {
	clientID  string
	projectID string
	emitter   service.EventEmitter
	log       *slog.Logger

	writeMu sync.Mutex
	conn    *websocket.Conn
	done    chan struct{}
}

// Dial connects to the collaboration server and starts the read loop.
func Dial(ctx context.Context, url, clientID, projectID string, emitter service.EventEmitter) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		clientID:  clientID,
		projectID: projectID,
		emitter:   emitter,
		log:       slog.With("component", "collab"),
		conn:      conn,
		done:      make(chan struct{}),
	}
	go c.readLoop(ctx, conn)
	return c, nil
}

// SendCursor broadcasts the local canvas-space pointer position.
func (c *Client) SendCursor(p domain.Point) {
	c.send(Message{Type: "cursor", ClientID: c.clientID, ProjectID: c.projectID, Cursor: p})
}

// SendSelection broadcasts the local selection ids.
func (c *Client) SendSelection(ids []string) {
	c.send(Message{Type: "selection", ClientID: c.clientID, ProjectID: c.projectID, Selection: ids})
}

func (c *Client) send(msg Message) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn == nil {
		return
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.log.Debug("dropped outbound message", "type", msg.Type, "err", err)
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer close(c.done)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			c.log.Debug("read loop ended", "err", err)
			return
		}
		if msg.ClientID == c.clientID {
			continue
		}
		switch msg.Type {
		case "cursor":
			c.emitter.Emit(ctx, "collab:cursor", msg)
		case "selection":
			c.emitter.Emit(ctx, "collab:selection", msg)
		}
	}
}

// Close tears down the connection and waits for the read loop to exit.
func (c *Client) Close() error {
	c.writeMu.Lock()
	conn := c.conn
	c.conn = nil
	c.writeMu.Unlock()
	if conn == nil {
		return nil
	}
	err := conn.Close()
	<-c.done
	return err
}
