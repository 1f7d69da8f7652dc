// Package mq publishes entity events to Redis pub/sub. Emission is
// fire-and-forget; a failed publish is logged, never surfaced to the caller.
package mq

import (
	"context"
	"encoding/json"
	"log"

	"mandi/rdx"
)

const Channel = "marketplace-events"

// Event describes something that happened to an entity. ShopID is set when
// the event concerns a particular shop's dashboard.
type Event struct {
	Name       string `json:"name"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	ShopID     string `json:"shopId,omitempty"`
	Status     string `json:"status,omitempty"`
}

func Emit(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event: %v", event.Name, err)
	}
}

// Subscribe returns a channel of decoded events. The caller owns the
// goroutine draining it.
func Subscribe(ctx context.Context) <-chan Event {
	sub := rdx.Conn.Subscribe(ctx, Channel)
	out := make(chan Event)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[Subscribe] Failed to parse event: %v", err)
				continue
			}
			out <- event
		}
	}()

	return out
}
