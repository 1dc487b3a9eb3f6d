package amqp

import (
	"encoding/json"
	"time"
)

// RecordEventMessage announces a change to a stored record. It carries
// only the resource, the action and the id. Consumers fetch the full
// record from the database when they need it.
type RecordEventMessage struct {
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// NewRecordEventMessage creates a new record event message
func NewRecordEventMessage(resource, action string, id int64) *RecordEventMessage {
	return &RecordEventMessage{
		Resource:  resource,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON creates a message from JSON bytes
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
