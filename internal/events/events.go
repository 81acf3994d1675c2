// Package events carries queue change notifications from the queue service
// to websocket subscribers, optionally through redis so every instance sees
// every change.
package events

import (
	"context"
	"encoding/json"
	"fmt"
)

type Type string

const (
	UserJoined   Type = "user_joined"
	UserLeft     Type = "user_left"
	UserRemoved  Type = "user_removed"
	EntryExpired Type = "entry_expired"
)

// Event is one change to a barber's queue.
type Event struct {
	EventType Type                   `json:"event_type"`
	BarberID  uint                   `json:"barber_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

// Encode returns the wire form shared by redis and websocket clients.
func Encode(e Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("events: encode: %w", err)
	}
	return b, nil
}

func Decode(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("events: decode: %w", err)
	}
	if e.EventType == "" || e.BarberID == 0 {
		return Event{}, fmt.Errorf("events: decode: missing event_type or barber_id")
	}
	return e, nil
}
