package websocket

// Central hub: one goroutine owns the room map, everything else talks to it
// through channels.

import (
	"context"

	"foodreview/internal/logging"
	"foodreview/internal/microservices/http-api/models"

	"github.com/rs/zerolog"
)

const eventBuffer = 256

type Hub struct {
	rooms      map[string]*Room
	register   chan *Client
	unregister chan *Client
	events     chan models.ReviewEvent
	sizes      chan chan map[string]int
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan models.ReviewEvent, eventBuffer),
		sizes:      make(chan chan map[string]int),
		done:       make(chan struct{}),
		log:        logging.NewLogger("live"),
	}
}

// Publish hands ev to the hub without blocking the writer. Events are
// dropped when the hub falls behind.
func (h *Hub) Publish(ev models.ReviewEvent) {
	select {
	case h.events <- ev:
	default:
		h.log.Warn().Str("review_id", ev.ReviewID).Str("type", ev.Type).Msg("live event dropped, hub is behind")
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for c := range room.clients {
					close(c.send)
				}
			}
			h.rooms = map[string]*Room{}
			return

		case c := <-h.register:
			room, ok := h.rooms[c.reviewID]
			if !ok {
				room = NewRoom(c.reviewID)
				h.rooms[c.reviewID] = room
			}
			room.AddClient(c)

		case c := <-h.unregister:
			h.drop(c)

		case ev := <-h.events:
			room, ok := h.rooms[ev.ReviewID]
			if !ok {
				continue
			}
			msg, err := encode(TypeUpdate, ev)
			if err != nil {
				h.log.Error().Err(err).Msg("encode live event")
				continue
			}
			for _, slow := range room.Broadcast(msg) {
				h.drop(slow)
			}

		case reply := <-h.sizes:
			out := make(map[string]int, len(h.rooms))
			for id, room := range h.rooms {
				out[id] = room.Size()
			}
			reply <- out
		}
	}
}

func (h *Hub) drop(c *Client) {
	room, ok := h.rooms[c.reviewID]
	if !ok || !room.RemoveClient(c) {
		return
	}
	close(c.send)
	if room.Size() == 0 {
		delete(h.rooms, c.reviewID)
	}
}

// join registers c unless the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// RoomSizes returns subscriber counts per review.
func (h *Hub) RoomSizes(ctx context.Context) (map[string]int, error) {
	reply := make(chan map[string]int, 1)
	select {
	case h.sizes <- reply:
	case <-h.done:
		return map[string]int{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case sizes := <-reply:
		return sizes, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
