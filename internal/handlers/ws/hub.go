// Package ws is the browser transport: a websocket per player, subscribed to
// one live game.
package ws

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-village/internal/engine/activation"
	"github.com/KirkDiggler/rpg-village/internal/entities"
)

// DefaultSendBuffer is how many outbound messages a slow client may queue
// before it is dropped
const DefaultSendBuffer = 256

// client is one websocket connection. A single writer goroutine drains send;
// writeMu serializes it with control frames written from other goroutines.
type client struct {
	id     string
	gameID string
	conn   *websocket.Conn

	send      chan []byte
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newClient(id, gameID string, conn *websocket.Conn, buffer int) *client {
	return &client{
		id:     id,
		gameID: gameID,
		conn:   conn,
		send:   make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// enqueue queues a message without blocking. A full queue closes the client.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		slog.Warn("Dropping slow websocket client",
			"client_id", c.id,
			"game_id", c.gameID)
		c.close()
		return false
	}
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *client) writePump() {
	for {
		select {
		case data := <-c.send:
			if err := c.write(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Hub fans effects and snapshots out to every client watching a game. It is
// the activation effect sink for the server.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[string]*client
}

var _ activation.EffectSink = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{games: make(map[string]map[string]*client)}
}

func (h *Hub) subscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.games[c.gameID]
	if !ok {
		subs = make(map[string]*client)
		h.games[c.gameID] = subs
	}
	subs[c.id] = c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.games[c.gameID]
	if !ok {
		return
	}
	delete(subs, c.id)
	if len(subs) == 0 {
		delete(h.games, c.gameID)
	}
}

func (h *Hub) subscribers(gameID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := h.games[gameID]
	out := make([]*client, 0, len(subs))
	for _, c := range subs {
		out = append(out, c)
	}
	return out
}

// Games returns the ids of games with at least one subscriber
func (h *Hub) Games() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.games))
	for id := range h.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Subscribers returns how many clients watch a game
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// RequestEffect forwards an effect to the game's clients. It never blocks.
func (h *Hub) RequestEffect(req activation.EffectRequest) {
	data, err := encode(&EffectMessage{Type: MessageEffect, EffectRequest: req})
	if err != nil {
		slog.Warn("Failed to encode effect",
			"game_id", req.GameID,
			"kind", string(req.Kind),
			"error", err)
		return
	}
	h.publish(req.GameID, data)
}

// BroadcastState sends a snapshot to the game's clients
func (h *Hub) BroadcastState(gameID string, snap *entities.Snapshot) {
	data, err := encode(&StateMessage{Type: MessageState, Snapshot: snap})
	if err != nil {
		slog.Warn("Failed to encode state",
			"game_id", gameID,
			"error", err)
		return
	}
	h.publish(gameID, data)
}

func (h *Hub) publish(gameID string, data []byte) {
	for _, c := range h.subscribers(gameID) {
		c.enqueue(data)
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*client
	for _, subs := range h.games {
		for _, c := range subs {
			all = append(all, c)
		}
	}
	h.games = make(map[string]map[string]*client)
	h.mu.Unlock()

	for _, c := range all {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = c.write(websocket.CloseMessage, msg)
		c.close()
	}
}
