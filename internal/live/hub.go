package live

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/anuj452005/excalidraw/internal/logger"
)

// Event is one page-scoped notification fanned out to subscribers. The
// server emits these on block create/update/delete and title renames; each
// open editor session applies them last-write-wins, with no conflict
// detection.
type Event struct {
	Event   string `json:"event"` // block:created | block:updated | block:deleted | page:renamed
	PageID  string `json:"pageId"`
	BlockID string `json:"blockId,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// subscriber serializes writes to one connection. gorilla/websocket permits
// at most one concurrent writer per connection, and broadcasts arrive from
// whichever request goroutine performed the mutation.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(ev)
}

// Hub manages websocket subscribers grouped by page.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]*subscriber
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]*subscriber)}
}

// Subscribe registers a connection for a page's events.
func (h *Hub) Subscribe(pageID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[pageID] == nil {
		h.rooms[pageID] = make(map[*websocket.Conn]*subscriber)
	}
	h.rooms[pageID][conn] = &subscriber{conn: conn}
}

// Unsubscribe removes a connection and closes it.
func (h *Hub) Unsubscribe(pageID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room := h.rooms[pageID]; room != nil {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, pageID)
		}
	}
	conn.Close()
}

// Broadcast sends the event to every subscriber of its page. A connection
// that fails to accept the write is dropped; broadcasts never block on a
// dead peer.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.rooms[ev.PageID]))
	for _, sub := range h.rooms[ev.PageID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.send(ev); err != nil {
			logger.Debug("dropping dead subscriber", map[string]interface{}{"pageId": ev.PageID})
			h.Unsubscribe(ev.PageID, sub.conn)
		}
	}
}

// Count returns the number of subscribers for a page.
func (h *Hub) Count(pageID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[pageID])
}
