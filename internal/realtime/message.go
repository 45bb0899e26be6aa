package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is the payload fanned out to realtime subscribers. Channel is
// the logical scope ("tenant:<id>" or "user:<id>"), Type names the domain
// event and Payload carries the event body.
type Message struct {
	Channel   string          `json:"channel"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// TenantChannel returns the channel all members of a tenant receive on
func TenantChannel(tenantID string) string {
	return fmt.Sprintf("tenant:%s", tenantID)
}

// UserChannel returns the channel scoped to a single user
func UserChannel(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}
