package amqpgw

import (
	"testing"
	"time"
)

func TestDispatchReplyRoutesByCorrelationID(t *testing.T) {
	g := &Gateway{pending: make(map[string]chan []byte)}

	ch := make(chan []byte, 1)
	g.mu.Lock()
	g.pending["abc"] = ch
	g.mu.Unlock()

	g.dispatchReply("abc", []byte(`{"isGroup":true}`))

	select {
	case raw := <-ch:
		if string(raw) != `{"isGroup":true}` {
			t.Fatalf("unexpected reply body: %s", raw)
		}
	case <-time.After(time.Second):
		t.Fatalf("reply not delivered")
	}
}

func TestDispatchReplyDropsUnknownCorrelationID(t *testing.T) {
	g := &Gateway{pending: make(map[string]chan []byte)}
	// Must not panic or block.
	g.dispatchReply("nobody-waiting", []byte(`{}`))
}

func TestNewCorrelationIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := newCorrelationID()
		if id == "" {
			t.Fatalf("empty correlation id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate correlation id %q", id)
		}
		seen[id] = struct{}{}
	}
}
