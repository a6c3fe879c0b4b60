package services

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
)

const liveSendBuffer = 16

// LiveConn is the minimal interface our WebSocket implementation must satisfy.
type LiveConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type liveClient struct {
	conn      LiveConn
	send      chan FeedbackEvent
	closeOnce sync.Once
}

// LiveHub fans submission events out to connected admin dashboards.
type LiveHub struct {
	bus *EventBus

	mu      sync.RWMutex
	clients map[uuid.UUID]*liveClient
}

func NewLiveHub(bus *EventBus) *LiveHub {
	return &LiveHub{bus: bus, clients: make(map[uuid.UUID]*liveClient)}
}

// Register adds conn and starts its writer. The returned id is passed to
// Unregister when the connection ends.
func (h *LiveHub) Register(conn LiveConn) uuid.UUID {
	id := uuid.New()
	c := &liveClient{conn: conn, send: make(chan FeedbackEvent, liveSendBuffer)}

	h.mu.Lock()
	h.clients[id] = c
	n := len(h.clients)
	h.mu.Unlock()
	metrics.LiveFeedClients.Set(float64(n))

	go h.writePump(id, c)
	return id
}

// Unregister removes a connection and closes it. Safe to call twice.
func (h *LiveHub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	n := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	metrics.LiveFeedClients.Set(float64(n))
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// Count returns the number of connected clients.
func (h *LiveHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues ev for every client. Slow clients miss events rather than
// stalling the others.
func (h *LiveHub) Broadcast(ev FeedbackEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		select {
		case c.send <- ev:
		default:
			logging.Warn().Str("client", id.String()).Msg("live feed client too slow, dropping event")
		}
	}
}

func (h *LiveHub) writePump(id uuid.UUID, c *liveClient) {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			logging.Debug().Err(err).Str("client", id.String()).Msg("live feed write failed")
			h.Unregister(id)
			return
		}
	}
}

// Serve relays bus events to clients until ctx is cancelled. It implements
// suture.Service.
func (h *LiveHub) Serve(ctx context.Context) error {
	msgs, err := h.bus.Subscribe(ctx)
	if err != nil {
		return err
	}
	logging.Info().Msg("live feed relay started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				h.closeAll()
				return nil
			}
			var ev FeedbackEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("failed to decode feedback event")
			} else {
				h.Broadcast(ev)
			}
			msg.Ack()
		}
	}
}

func (h *LiveHub) String() string { return "live-feed-hub" }

func (h *LiveHub) closeAll() {
	h.mu.RLock()
	ids := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	for _, id := range ids {
		h.Unregister(id)
	}
}
