package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/interview-bot/backend/internal/analysis/topic"
	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
)

// Local keeps memory in process. Per-category question patterns outlive Clear
// so later sessions still recall earlier topics.
type Local struct {
	mu        sync.RWMutex
	userID    string
	sessionID string
	history   []conversation.Interaction
	patterns  map[string][]conversation.Interaction
	now       func() time.Time
}

// NewLocal returns an empty in-process store for userID.
func NewLocal(userID string) *Local {
	l := &Local{
		userID:   userID,
		patterns: make(map[string][]conversation.Interaction),
		now:      time.Now,
	}
	l.sessionID = conversation.NewSessionID(l.now())
	return l
}

func (l *Local) Available() bool { return true }

func (l *Local) RecordInteraction(_ context.Context, question, response string, metadata map[string]string) error {
	category := topic.Categorize(question)

	l.mu.Lock()
	defer l.mu.Unlock()

	item := conversation.Interaction{
		ID:        uuid.NewString(),
		Timestamp: l.now().UTC(),
		Question:  question,
		Response:  response,
		SessionID: l.sessionID,
		Category:  category,
		Metadata:  copyMetadata(metadata),
	}
	l.history = append(l.history, item)
	l.patterns[category] = append(l.patterns[category], item)
	return nil
}

func (l *Local) RelevantContext(_ context.Context, question string, limit int) (string, error) {
	category := topic.Categorize(question)

	l.mu.RLock()
	recent := lastN(l.patterns[category], limit)
	l.mu.RUnlock()

	if len(recent) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(recent)+1)
	lines = append(lines, localContextHeader)
	for _, item := range recent {
		lines = append(lines, "Previously asked: "+item.Question)
	}
	return strings.Join(lines, "\n"), nil
}

func (l *Local) Summary(_ context.Context) (conversation.Summary, error) {
	l.mu.RLock()
	history := append([]conversation.Interaction(nil), l.history...)
	l.mu.RUnlock()

	return conversation.Summarize(history, topic.Extract(questionsOf(history))), nil
}

func (l *Local) Clear(_ context.Context) error {
	l.mu.Lock()
	l.history = nil
	l.sessionID = conversation.NewSessionID(l.now())
	l.mu.Unlock()
	return nil
}

func (l *Local) Export(_ context.Context) (conversation.Export, error) {
	l.mu.RLock()
	history := append([]conversation.Interaction{}, l.history...)
	sessionID := l.sessionID
	l.mu.RUnlock()

	return conversation.Export{
		UserID:     l.userID,
		SessionID:  sessionID,
		History:    history,
		Summary:    conversation.Summarize(history, topic.Extract(questionsOf(history))),
		ExportedAt: l.now().UTC(),
	}, nil
}

// SessionID returns the current memory session identifier.
func (l *Local) SessionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessionID
}

func copyMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ Store = (*Local)(nil)
