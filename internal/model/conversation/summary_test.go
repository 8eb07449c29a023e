package conversation

import (
	"testing"
	"time"
)

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil)

	if got.Summary != NoConversationSummary || got.QuestionCount != 0 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if got.Topics == nil || len(got.Topics) != 0 {
		t.Fatalf("expected empty non-nil topics, got %#v", got.Topics)
	}
	if got.LastInteraction != nil {
		t.Fatal("expected no last interaction")
	}
}

func TestSummarizeHistory(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []Interaction{
		{Question: "q1", Timestamp: start},
		{Question: "q2", Timestamp: start.Add(4*time.Minute + 50*time.Second)},
	}

	got := Summarize(history, []string{"skills"})

	if got.Summary != "Discussed 1 main topics in 2 questions" {
		t.Fatalf("unexpected summary text %q", got.Summary)
	}
	if got.SessionDuration != "4 minutes" {
		t.Fatalf("unexpected duration %q", got.SessionDuration)
	}
	if got.LastInteraction == nil || !got.LastInteraction.Equal(history[1].Timestamp) {
		t.Fatalf("unexpected last interaction %v", got.LastInteraction)
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID(time.Date(2025, 3, 1, 9, 5, 7, 0, time.UTC))
	if id != "session_20250301_090507" {
		t.Fatalf("unexpected session id %q", id)
	}
}
