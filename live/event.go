package live

import (
	"encoding/json"
	"time"

	"mandi/mq"
)

// feedPayload is what dashboard clients receive.
type feedPayload struct {
	Name      string `json:"name"`
	EntityID  string `json:"entityId"`
	Status    string `json:"status,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func encodeEvent(event mq.Event) ([]byte, error) {
	return json.Marshal(feedPayload{
		Name:      event.Name,
		EntityID:  event.EntityID,
		Status:    event.Status,
		Timestamp: time.Now().Unix(),
	})
}
