package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
)

// TypeHello is sent once to every view as it connects.
const TypeHello = "hello"

// Message tells a view that the snapshot moved to Revision. Views refetch
// the snapshot when Revision is ahead of what they last rendered.
type Message struct {
	Type     string           `json:"type"`
	Revision uint64           `json:"revision"`
	Entity   string           `json:"entity,omitempty"`
	Action   string           `json:"action,omitempty"`
	ID       string           `json:"id,omitempty"`
	Status   model.TaskStatus `json:"status,omitempty"`
}

// NewMessage builds a change notice. Type is "<entity>_<action>".
func NewMessage(rev uint64, entity, action, id string) Message {
	return Message{
		Type:     entity + "_" + action,
		Revision: rev,
		Entity:   entity,
		Action:   action,
		ID:       id,
	}
}

// Hub fans committed changes out to every open view. It remembers the last
// revision it relayed so a view joining late knows where it stands.
type Hub struct {
	mu       sync.Mutex
	clients  map[*Client]struct{}
	revision uint64
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds c and queues a hello carrying the current revision ahead of
// any later change.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	hello, err := json.Marshal(Message{Type: TypeHello, Revision: h.revision})
	if err == nil {
		select {
		case c.send <- hello:
		default:
		}
	}
	h.logger.Debug("view connected", "views", len(h.clients), "revision", h.revision)
}

// Unregister removes c and closes its send channel. Calling it twice is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Relay is an app.Listener. The controller calls it in revision order.
func (h *Hub) Relay(ev app.Event, snap model.Snapshot) {
	msg := NewMessage(ev.Revision, ev.Entity, ev.Action, ev.ID)
	if ev.Entity == "task" && ev.ID != "" {
		if i := model.FindTask(snap.Tasks, ev.ID); i >= 0 {
			msg.Status = snap.Tasks[i].Status
		}
	}
	h.Broadcast(msg)
}

// Broadcast queues msg for every view. A view whose buffer is full misses
// it and picks the change up from the next revision it sees.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.Revision > h.revision {
		h.revision = msg.Revision
	}
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("dropped change for slow views", "type", msg.Type, "revision", msg.Revision, "dropped", dropped)
	}
}

// Revision is the last revision relayed to views.
func (h *Hub) Revision() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revision
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
