package conversation

import "time"

// Interaction persists one answered question for memory and export.
type Interaction struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Question  string            `json:"question"`
	Response  string            `json:"response"`
	SessionID string            `json:"session_id"`
	Category  string            `json:"category,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
