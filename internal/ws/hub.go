package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type delivery struct {
	topic   uuid.UUID
	payload []byte
}

// Hub fans payloads out to the clients watching one conversation.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]struct{}
	broadcast  chan delivery
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     log.With().Str("component", "ws").Logger(),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room := h.rooms[client.topic]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[client.topic] = room
			}
			room[client] = struct{}{}
			watchers := len(room)
			h.mutex.Unlock()
			h.logger.Debug().Str("conversation_id", client.topic.String()).Int("watchers", watchers).Msg("ws connected")

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.rooms[d.topic]))
			for c := range h.rooms[d.topic] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, ok := h.rooms[client.topic]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.topic)
	}
	h.logger.Debug().Str("conversation_id", client.topic.String()).Int("watchers", len(room)).Msg("ws disconnected")
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for topic, room := range h.rooms {
		for c := range room {
			close(c.send)
		}
		delete(h.rooms, topic)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Deliver queues payload for every watcher of topic. It never blocks; a full
// buffer drops the payload and watchers catch up by polling.
func (h *Hub) Deliver(topic uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- delivery{topic: topic, payload: payload}:
	default:
		h.logger.Warn().Str("conversation_id", topic.String()).Msg("ws delivery dropped, buffer full")
	}
}

func (h *Hub) Watchers(topic uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[topic])
}
