package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	fail   bool
	closed bool
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("connection reset")
	}
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestBroadcastReachesAllConnections(t *testing.T) {
	h := NewHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register(1, a)
	h.Register(1, b) // second device, same owner
	h.Register(2, c)

	h.Broadcast(map[string]string{"type": "user_updated"})

	for i, conn := range []*fakeConn{a, b, c} {
		if conn.received() != 1 {
			t.Errorf("conn %d received %d messages, want 1", i, conn.received())
		}
	}
	var msg map[string]string
	if err := json.Unmarshal(a.sent[0], &msg); err != nil || msg["type"] != "user_updated" {
		t.Errorf("bad payload %s: %v", a.sent[0], err)
	}
}

func TestBroadcastIsolatesDeadConnections(t *testing.T) {
	h := NewHub()
	dead := &fakeConn{fail: true}
	alive1, alive2 := &fakeConn{}, &fakeConn{}
	h.Register(1, alive1)
	h.Register(2, dead)
	h.Register(3, alive2)

	h.Broadcast("ping")

	if alive1.received() != 1 || alive2.received() != 1 {
		t.Fatalf("live connections missed the event: %d, %d",
			alive1.received(), alive2.received())
	}
	if !dead.closed {
		t.Error("dead connection was not closed")
	}
	if h.Count(2) != 0 {
		t.Error("dead connection still registered")
	}
}

func TestUnregisteredConnectionNeverReceives(t *testing.T) {
	h := NewHub()
	c := &fakeConn{}
	h.Register(1, c)
	h.Unregister(1, c)
	h.Broadcast("ping")
	if c.received() != 0 {
		t.Fatalf("unregistered connection received %d events", c.received())
	}
	if h.Count(1) != 0 {
		t.Fatal("owner bucket not cleaned up")
	}
}

func TestConcurrentChurnDuringBroadcast(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(owner int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c := &fakeConn{}
				h.Register(owner, c)
				h.Broadcast("event")
				h.Unregister(owner, c)
			}
		}(int64(i % 4))
	}
	wg.Wait()
	for owner := int64(0); owner < 4; owner++ {
		if h.Count(owner) != 0 {
			t.Errorf("owner %d still has %d registered connections", owner, h.Count(owner))
		}
	}
}
