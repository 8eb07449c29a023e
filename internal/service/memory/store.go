package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
)

// ErrUnavailable is returned by every call on a store that was not configured.
var ErrUnavailable = errors.New("memory not available")

// Store keeps the interview transcript and recalls earlier discussion.
type Store interface {
	// Available is decided once at construction and never changes.
	Available() bool
	RecordInteraction(ctx context.Context, question, response string, metadata map[string]string) error
	// RelevantContext returns a prompt-ready block about earlier related
	// questions, or "" when there is nothing relevant.
	RelevantContext(ctx context.Context, question string, limit int) (string, error)
	Summary(ctx context.Context) (conversation.Summary, error)
	// Clear drops the current session transcript and starts a new session.
	Clear(ctx context.Context) error
	Export(ctx context.Context) (conversation.Export, error)
}

const (
	localContextHeader  = "=== PREVIOUS DISCUSSIONS ==="
	remoteContextHeader = "=== CONVERSATION CONTEXT ==="
	remoteSnippetLimit  = 200
)

func questionsOf(history []conversation.Interaction) []string {
	questions := make([]string, len(history))
	for i, item := range history {
		questions[i] = item.Question
	}
	return questions
}

func lastN[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) > n {
		items = items[len(items)-n:]
	}
	return append([]T(nil), items...)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
