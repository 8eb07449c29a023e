package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
)

// stepClock advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start.Add(-step)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(step)
		return current
	}
}

func TestLocalEmptySummary(t *testing.T) {
	l := NewLocal("tester")

	summary, err := l.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, conversation.NoConversationSummary, summary.Summary)
	assert.Equal(t, 0, summary.QuestionCount)
	assert.Empty(t, summary.Topics)
}

func TestLocalRecordAndSummarize(t *testing.T) {
	ctx := context.Background()
	l := NewLocal("tester")
	l.now = stepClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), 3*time.Minute)

	require.NoError(t, l.RecordInteraction(ctx, "What's your superpower?", "debugging", map[string]string{"model": "fake"}))
	require.NoError(t, l.RecordInteraction(ctx, "Which framework do you like?", "chi", nil))

	summary, err := l.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Discussed 3 main topics in 2 questions", summary.Summary)
	assert.Equal(t, []string{"personal", "skills", "experience"}, summary.Topics)
	assert.Equal(t, "3 minutes", summary.SessionDuration)
	require.NotNil(t, summary.LastInteraction)
}

func TestLocalRelevantContextUsesCategory(t *testing.T) {
	ctx := context.Background()
	l := NewLocal("tester")

	for i := 1; i <= 4; i++ {
		require.NoError(t, l.RecordInteraction(ctx, fmt.Sprintf("skill question %d", i), "a", nil))
	}
	require.NoError(t, l.RecordInteraction(ctx, "Tell me about a project", "a", nil))

	got, err := l.RelevantContext(ctx, "Another programming skill?", 3)
	require.NoError(t, err)
	assert.Equal(t, "=== PREVIOUS DISCUSSIONS ===\n"+
		"Previously asked: skill question 2\n"+
		"Previously asked: skill question 3\n"+
		"Previously asked: skill question 4", got)

	none, err := l.RelevantContext(ctx, "Why this company?", 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocalClearRotatesSessionButKeepsRecall(t *testing.T) {
	ctx := context.Background()
	l := NewLocal("tester")
	l.now = stepClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	before := l.SessionID()

	require.NoError(t, l.RecordInteraction(ctx, "What's your background?", "long story", nil))
	require.NoError(t, l.Clear(ctx))

	assert.NotEqual(t, before, l.SessionID())
	summary, _ := l.Summary(ctx)
	assert.Equal(t, 0, summary.QuestionCount)

	recall, _ := l.RelevantContext(ctx, "More about your background", 3)
	assert.Contains(t, recall, "Previously asked: What's your background?")
}

func TestLocalExport(t *testing.T) {
	ctx := context.Background()
	l := NewLocal("tester")
	require.NoError(t, l.RecordInteraction(ctx, "q", "a", map[string]string{"enhanced": "true"}))

	export, err := l.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, "tester", export.UserID)
	assert.Equal(t, l.SessionID(), export.SessionID)
	require.Len(t, export.History, 1)
	assert.Equal(t, "true", export.History[0].Metadata["enhanced"])
	assert.Equal(t, 1, export.Summary.QuestionCount)
}

func TestDisabledStore(t *testing.T) {
	ctx := context.Background()
	var s Store = Disabled{}

	assert.False(t, s.Available())
	assert.ErrorIs(t, s.RecordInteraction(ctx, "q", "a", nil), ErrUnavailable)
	_, err := s.RelevantContext(ctx, "q", 3)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Summary(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Clear(ctx), ErrUnavailable)
	_, err = s.Export(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLocalExportIsConsistentUnderWrites(t *testing.T) {
	ctx := context.Background()
	l := NewLocal("tester")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = l.RecordInteraction(ctx, fmt.Sprintf("question %d", i), "a", nil)
			if i%50 == 49 {
				_ = l.Clear(ctx)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			export, err := l.Export(ctx)
			assert.NoError(t, err)
			assert.Equal(t, len(export.History), export.Summary.QuestionCount)
		}
	}()
	wg.Wait()
}
