package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "shop1",
	}

	hub.register <- client

	data := []byte(`{"name":"order-placed","entityId":"o1"}`)
	hub.Broadcast("shop1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), Room: "shopA"}
	b := &Client{Send: make(chan []byte, 10), Room: "shopB"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("shopA", []byte("for-a"))

	select {
	case got := <-a.Send:
		if string(got) != "for-a" {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("shopB must not receive shopA events, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
