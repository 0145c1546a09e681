package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Room = subscribers of one review
type Room struct {
	ID      string
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
	}
}

func (r *Room) AddClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

// RemoveClient reports whether c was present.
func (r *Room) RemoveClient(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c]; !ok {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast queues message for every client. Clients whose buffer is full
// are returned so the hub can drop them.
func (r *Room) Broadcast(message []byte) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var slow []*Client
	for c := range r.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	if len(slow) > 0 {
		log.Warn().Str("review_id", r.ID).Int("dropped", len(slow)).Msg("dropping slow live subscribers")
	}
	return slow
}

func (r *Room) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
