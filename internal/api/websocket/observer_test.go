package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ramonehamilton/MD-Companion/internal/events"
)

func TestObserver_ForwardsDispatchedEvents(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url, nil)
	waitForClients(t, hub, 1)

	d := events.NewEventDispatcher(nil)
	d.Register(NewObserver(hub))

	sent := events.NewTypedEvent(context.Background(), events.TypeRecordAdded, events.RecordEvent{ID: 7, Season: "S38"})
	d.Dispatch(sent)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	var received struct {
		ID   string             `json:"id"`
		Type string             `json:"type"`
		Data events.RecordEvent `json:"data"`
	}
	if err := json.Unmarshal(message, &received); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if received.ID != sent.ID {
		t.Errorf("ID = %q, want %q", received.ID, sent.ID)
	}
	if received.Type != events.TypeRecordAdded {
		t.Errorf("Type = %q, want %q", received.Type, events.TypeRecordAdded)
	}
	if received.Data.ID != 7 || received.Data.Season != "S38" {
		t.Errorf("Data = %+v", received.Data)
	}
}

func TestObserver_AfterStop(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	hub.Stop()

	o := NewObserver(hub)
	if err := o.OnEvent(events.Event{Type: "x"}); err != nil {
		t.Errorf("OnEvent() error = %v", err)
	}
	if !o.ShouldHandle("anything") {
		t.Error("observer should handle every event type")
	}
}
