package conversation

import (
	"fmt"
	"time"
)

// NoConversationSummary is reported before any question has been recorded.
const NoConversationSummary = "No conversation yet"

// Summary describes the conversation held in the current memory session.
type Summary struct {
	Summary         string     `json:"summary"`
	Topics          []string   `json:"topics"`
	QuestionCount   int        `json:"question_count"`
	SessionDuration string     `json:"session_duration,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
}

// Export bundles a session for offline analysis or backup.
type Export struct {
	UserID     string        `json:"user_id"`
	SessionID  string        `json:"session_id"`
	History    []Interaction `json:"conversation_history"`
	Summary    Summary       `json:"summary"`
	ExportedAt time.Time     `json:"exported_at"`
}

// Summarize builds a Summary from history using topics to label what was discussed.
func Summarize(history []Interaction, topics []string) Summary {
	if len(history) == 0 {
		return Summary{Summary: NoConversationSummary, Topics: []string{}}
	}
	if topics == nil {
		topics = []string{}
	}

	first := history[0].Timestamp
	last := history[len(history)-1].Timestamp
	minutes := int(last.Sub(first) / time.Minute)

	return Summary{
		Summary:         fmt.Sprintf("Discussed %d main topics in %d questions", len(topics), len(history)),
		Topics:          topics,
		QuestionCount:   len(history),
		SessionDuration: fmt.Sprintf("%d minutes", minutes),
		LastInteraction: &last,
	}
}

// NewSessionID mints a memory session identifier from t.
func NewSessionID(t time.Time) string {
	return "session_" + t.Format("20060102_150405")
}
