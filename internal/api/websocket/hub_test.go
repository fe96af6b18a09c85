package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	if !hub.BroadcastEvent(Event{Type: "record:added"}) {
		t.Error("BroadcastEvent() on a running hub should succeed")
	}
	if count := hub.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients, got %d", count)
	}
}

func TestHub_DeliversToEveryClient(t *testing.T) {
	hub, url := startHub(t)

	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conns = append(conns, dial(t, url, nil))
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent(Event{ID: "e1", Type: "season:changed", Data: map[string]string{"active": "S39"}})

	for i, conn := range conns {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		_, message, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("Client %d failed to read message: %v", i, err)
			continue
		}

		var received Event
		if err := json.Unmarshal(message, &received); err != nil {
			t.Errorf("Client %d failed to unmarshal message: %v", i, err)
			continue
		}
		if received.Type != "season:changed" || received.ID != "e1" {
			t.Errorf("Client %d got %+v", i, received)
		}
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url, nil)
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, url := startHub(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	if err == nil {
		t.Fatal("Expected a foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}

	conn := dial(t, url, http.Header{"Origin": []string{"http://localhost:5173"}})
	if conn == nil {
		t.Error("Expected a localhost origin to be accepted")
	}
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	hub.Stop()
	hub.Stop()

	deadline := time.Now().Add(time.Second)
	for !hub.IsStopped() {
		if time.Now().After(deadline) {
			t.Fatal("hub did not stop")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if hub.BroadcastEvent(Event{Type: "x"}) {
		t.Error("BroadcastEvent() after Stop should return false")
	}

	rec := httptest.NewRecorder()
	hub.ServeWs(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ServeWs after Stop = %d, want 503", rec.Code)
	}
}
