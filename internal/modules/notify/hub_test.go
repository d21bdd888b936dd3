package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConnection(userID int64, buffer int) *connection {
	return &connection{userID: userID, send: make(chan []byte, buffer)}
}

func TestHub_PushDeliversToRegisteredConnection(t *testing.T) {
	h := NewHub()
	c := testConnection(7, 1)
	h.register(c)

	h.Push(7, &Event{Type: EventVerificationApproved})

	select {
	case data := <-c.send:
		var event Event
		assert.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventVerificationApproved, event.Type)
	default:
		t.Fatal("expected an event on the send channel")
	}
}

func TestHub_PushToUnknownUserIsNoop(t *testing.T) {
	h := NewHub()
	h.Push(99, &Event{Type: EventVerificationApproved})
}

func TestHub_PushDropsWhenClientIsSlow(t *testing.T) {
	h := NewHub()
	c := testConnection(7, 1)
	h.register(c)

	h.Push(7, &Event{Type: "first"})
	h.Push(7, &Event{Type: "second"})

	var event Event
	assert.NoError(t, json.Unmarshal(<-c.send, &event))
	assert.Equal(t, "first", event.Type)
	assert.Empty(t, c.send)
}

func TestHub_RegisterReplacesPreviousConnection(t *testing.T) {
	h := NewHub()
	old := testConnection(7, 1)
	h.register(old)

	replacement := testConnection(7, 1)
	h.register(replacement)

	_, open := <-old.send
	assert.False(t, open, "previous connection's send channel must be closed")

	h.Push(7, &Event{Type: EventVerificationApproved})
	assert.Len(t, replacement.send, 1)
}

func TestHub_UnregisterOnlyRemovesOwnConnection(t *testing.T) {
	h := NewHub()
	old := testConnection(7, 1)
	h.register(old)
	replacement := testConnection(7, 1)
	h.register(replacement)

	// the replaced connection's pump shuts down after the new one took over
	h.unregister(old)

	h.Push(7, &Event{Type: EventVerificationApproved})
	assert.Len(t, replacement.send, 1)
}

func TestHub_NotifyVerificationApproved(t *testing.T) {
	h := NewHub()
	c := testConnection(7, 1)
	h.register(c)

	assert.NoError(t, h.NotifyVerificationApproved(context.Background(), 7))

	var event Event
	assert.NoError(t, json.Unmarshal(<-c.send, &event))
	assert.Equal(t, EventVerificationApproved, event.Type)

	payload, ok := event.Payload.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, true, payload["accountActivated"])
}
