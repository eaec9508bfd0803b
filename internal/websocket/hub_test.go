package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
)

func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
	}
}

// next pops one queued message off c without blocking.
func next(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg
	default:
		t.Fatal("no message queued")
		return Message{}
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)
	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestHelloCarriesCurrentRevision(t *testing.T) {
	hub := NewHub(slog.Default())

	early := mockClient(hub)
	hub.Register(early)
	defer hub.Unregister(early)
	if msg := next(t, early); msg.Type != TypeHello || msg.Revision != 0 {
		t.Fatalf("first hello = %+v", msg)
	}

	hub.Relay(app.Event{Entity: "reward", Action: "created", ID: "r_9", Revision: 7}, model.Snapshot{})

	late := mockClient(hub)
	hub.Register(late)
	defer hub.Unregister(late)
	if msg := next(t, late); msg.Type != TypeHello || msg.Revision != 7 {
		t.Errorf("late hello = %+v, want revision 7", msg)
	}
	if len(late.send) != 0 {
		t.Error("late view should not replay earlier changes")
	}
}

func TestRelayTaskEvent(t *testing.T) {
	hub := NewHub(slog.Default())

	parentView := mockClient(hub)
	childView := mockClient(hub)
	hub.Register(parentView)
	hub.Register(childView)
	defer hub.Unregister(parentView)
	defer hub.Unregister(childView)
	next(t, parentView)
	next(t, childView)

	snap := model.Snapshot{Tasks: []model.Task{
		{ID: "t_1738761000000_abc123def", Status: model.StatusWaitingVerification},
	}}
	hub.Relay(app.Event{Entity: "task", Action: "submitted", ID: "t_1738761000000_abc123def", Revision: 3}, snap)

	for _, c := range []*Client{parentView, childView} {
		got := next(t, c)
		if got.Type != "task_submitted" {
			t.Errorf("expected type task_submitted, got %s", got.Type)
		}
		if got.Revision != 3 {
			t.Errorf("revision = %d, want 3", got.Revision)
		}
		if got.Status != model.StatusWaitingVerification {
			t.Errorf("status = %q, want WAITING_VERIFICATION", got.Status)
		}
	}
	if hub.Revision() != 3 {
		t.Errorf("hub revision = %d, want 3", hub.Revision())
	}
}

func TestRelayDeletedTaskHasNoStatus(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)
	next(t, c)

	hub.Relay(app.Event{Entity: "task", Action: "deleted", ID: "t_gone", Revision: 4}, model.Snapshot{})

	got := next(t, c)
	if got.Status != "" {
		t.Errorf("status = %q, want empty", got.Status)
	}
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Broadcast(NewMessage(1, "reward", "redeemed", "r_1"))
	if hub.Revision() != 1 {
		t.Errorf("revision = %d, want 1", hub.Revision())
	}
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)

	// The hello already holds one slot.
	for i := 1; i < sendBufferSize; i++ {
		hub.Broadcast(NewMessage(uint64(i), "task", "created", ""))
	}
	hub.Broadcast(NewMessage(sendBufferSize, "task", "dropped", ""))

	count := 0
	for len(c.send) > 0 {
		<-c.send
		count++
	}
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}
	// A dropped message still advances the revision late views are told.
	if hub.Revision() != sendBufferSize {
		t.Errorf("revision = %d, want %d", hub.Revision(), sendBufferSize)
	}
}

func TestMessageJSON(t *testing.T) {
	data, err := json.Marshal(NewMessage(12, "task", "batch_created", ""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	json.Unmarshal(data, &raw)

	if raw["type"] != "task_batch_created" {
		t.Errorf("type = %v", raw["type"])
	}
	if raw["revision"] != float64(12) {
		t.Errorf("revision = %v, want 12", raw["revision"])
	}
	for _, k := range []string{"id", "status"} {
		if _, ok := raw[k]; ok {
			t.Errorf("expected no %s field, got %s", k, data)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub)
			hub.Register(c)
			hub.Broadcast(NewMessage(uint64(i), "member", "created", "c_1"))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
