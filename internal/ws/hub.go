package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Conn is one live client connection. Send must be safe for concurrent use.
type Conn interface {
	Send(data []byte) error
	Close() error
}

// Registry maps an owner id to the set of that owner's open connections.
// Registration and deregistration happen on session lifecycle events,
// concurrently with broadcasts.
type Registry interface {
	Register(ownerID int64, c Conn)
	Unregister(ownerID int64, c Conn)
	Snapshot() []Conn
}

// Hub is the process-lifetime Registry. Broadcasts iterate over a
// point-in-time snapshot taken under the lock, so membership may change
// mid-broadcast without corrupting iteration.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]map[Conn]struct{})}
}

func (h *Hub) Register(ownerID int64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[ownerID]
	if !ok {
		set = make(map[Conn]struct{})
		h.conns[ownerID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(ownerID int64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[ownerID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, ownerID)
	}
}

func (h *Hub) Snapshot() []Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Conn, 0, len(h.conns))
	for _, set := range h.conns {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// Count reports how many connections an owner currently has registered.
func (h *Hub) Count(ownerID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[ownerID])
}

// Broadcast marshals v once and delivers it to every registered connection.
// A dead connection is closed and dropped; it never blocks delivery to the
// rest and never surfaces to the caller.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws: marshal broadcast: %v", err)
		return
	}
	for _, c := range h.Snapshot() {
		if err := c.Send(data); err != nil {
			log.Printf("ws: drop dead connection: %v", err)
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c Conn) {
	h.mu.Lock()
	for ownerID, set := range h.conns {
		if _, ok := set[c]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.conns, ownerID)
			}
		}
	}
	h.mu.Unlock()
	_ = c.Close()
}
