// Package ws serves the session view and notifications to browsers over a
// websocket feed.
package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/inconshreveable/log15"
)

var wlog = log.New("module", "feed.ws")

const clientSendBuffer = 64

var ErrTooManyConnections = errors.New("too many websocket connections")

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcaster fans messages out to every connected client. New clients get
// the latest view as a snapshot first.
type Broadcaster struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	maxConns int
	latest   []byte
}

// NewBroadcaster limits the feed to maxConns clients; zero means unlimited.
func NewBroadcaster(maxConns int) *Broadcaster {
	return &Broadcaster{
		clients:  make(map[*client]bool),
		maxConns: maxConns,
	}
}

func (b *Broadcaster) AddClient(conn *websocket.Conn) (*client, error) {
	b.mu.Lock()
	if b.maxConns > 0 && len(b.clients) >= b.maxConns {
		b.mu.Unlock()
		return nil, ErrTooManyConnections
	}
	c := newClient(conn)
	b.clients[c] = true
	if b.latest != nil {
		c.send <- b.latest
	}
	b.mu.Unlock()

	return c, nil
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// Latest returns the last published view payload, nil before the first one.
func (b *Broadcaster) Latest() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

func (b *Broadcaster) PublishView(payload ViewPayload) {
	snapshot, err := json.Marshal(Message{Type: MsgSnapshot, Payload: payload})
	if err != nil {
		wlog.Error("marshal view", "err", err)
		return
	}
	b.mu.Lock()
	b.latest = snapshot
	b.mu.Unlock()

	b.broadcast(Message{Type: MsgView, Payload: payload})
}

func (b *Broadcaster) PublishNotification(payload NotificationPayload) {
	b.broadcast(Message{Type: MsgNotification, Payload: payload})
}

func (b *Broadcaster) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		wlog.Error("marshal feed message", "type", msg.Type, "err", err)
		return
	}

	// Sends happen under the read lock so no channel is closed mid-send.
	var slow []*client
	b.mu.RLock()
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	b.mu.RUnlock()

	for _, c := range slow {
		wlog.Warn("ws client too slow, disconnecting", "remote", c.conn.RemoteAddr())
		b.RemoveClient(c)
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects every client.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
	}
}
