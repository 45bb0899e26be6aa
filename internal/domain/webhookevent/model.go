package webhookevent

import "time"

// ProcessedEvent records a gateway webhook event id that has already been
// applied. The webhook handler consults this table before dispatching so
// at-least-once delivery from the gateway has exactly-once effect.
type ProcessedEvent struct {
	EventID     string    `json:"event_id" gorm:"primaryKey"`
	EventType   string    `json:"event_type"`
	ProcessedAt time.Time `json:"processed_at" gorm:"index"`
}

func (ProcessedEvent) TableName() string {
	return "processed_webhook_events"
}
