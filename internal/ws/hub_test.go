package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, sessionID uuid.UUID) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessionID := uuid.New()
	client := mockClient(hub, sessionID)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[sessionID] == nil {
		t.Fatal("session room not created")
	}
	if !hub.rooms[sessionID][client] {
		t.Fatal("client not registered in session room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessionID := uuid.New()
	client := mockClient(hub, sessionID)

	// Register client
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Unregister client
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[sessionID] != nil {
		t.Fatal("session room not cleaned up after last client unregistered")
	}
}

func TestBroadcastToSingleSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	session1 := uuid.New()
	session2 := uuid.New()

	client1 := mockClient(hub, session1)
	client2 := mockClient(hub, session2)

	// Register both clients
	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	// Broadcast to session1 only
	testPayload := json.RawMessage(`{"status":"ordered","totalPrice":9000}`)
	event := Event{
		Type:    EventOrderUpdated,
		Payload: testPayload,
	}
	hub.BroadcastToSession(session1, event)

	// Check client1 receives the message
	select {
	case msg := <-client1.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != EventOrderUpdated {
			t.Errorf("expected type '%s', got '%s'", EventOrderUpdated, received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client1 did not receive message")
	}

	// Check client2 does NOT receive the message
	select {
	case <-client2.send:
		t.Fatal("client2 should not have received message for different session")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToMultipleClientsInSameSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessionID := uuid.New()

	// A kiosk screen and a kitchen display watching the same session
	client1 := mockClient(hub, sessionID)
	client2 := mockClient(hub, sessionID)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	event := Event{
		Type:    EventOrderUpdated,
		Payload: json.RawMessage(`{"status":"completed"}`),
	}
	hub.BroadcastToSession(sessionID, event)

	for i, client := range []*Client{client1, client2} {
		select {
		case <-client.send:
			// Received
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestSlowConsumerIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessionID := uuid.New()
	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte), // unbuffered, nothing reading
	}

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToSession(sessionID, Event{Type: EventOrderUpdated, Payload: json.RawMessage(`{}`)})
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[sessionID] != nil {
		t.Fatal("slow client not removed from session room")
	}
}
