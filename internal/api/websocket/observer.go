package websocket

import (
	"github.com/ramonehamilton/MD-Companion/internal/events"
)

// Observer forwards dispatched events to WebSocket clients.
type Observer struct {
	hub *Hub
}

// NewObserver creates an observer broadcasting on hub.
func NewObserver(hub *Hub) *Observer {
	return &Observer{hub: hub}
}

// OnEvent broadcasts the event. Events after the hub stopped are dropped.
func (o *Observer) OnEvent(event events.Event) error {
	o.hub.BroadcastEvent(Event{
		ID:   event.ID,
		Type: event.Type,
		Data: event.Data,
		Time: event.Time,
	})
	return nil
}

// GetName returns the observer's name.
func (o *Observer) GetName() string {
	return "WebSocketObserver"
}

// ShouldHandle returns true for all events.
func (o *Observer) ShouldHandle(eventType string) bool {
	return true
}

var _ events.Observer = (*Observer)(nil)
