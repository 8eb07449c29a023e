package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/analysis/fallback"
	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
)

type answererFunc func(ctx context.Context, q string) (string, error)

func (f answererFunc) AnswerQuestion(ctx context.Context, q string) (string, error) { return f(ctx, q) }

func TestResponderWithoutAssistantUsesFallback(t *testing.T) {
	p := profile.Seed()
	r := NewResponder(nil, fallback.New(p), BreakerSettings{})

	got, err := r.Answer(context.Background(), "What's your superpower?")
	require.NoError(t, err)

	assert.Equal(t, p.Superpower, got)
	assert.False(t, r.ModelEnabled())
	assert.Equal(t, StatusFallback, r.Status())
}

func TestResponderUsesAssistant(t *testing.T) {
	r := NewResponder(answererFunc(func(context.Context, string) (string, error) {
		return "model answer", nil
	}), fallback.New(profile.Seed()), BreakerSettings{ConsecutiveFailures: 2, Cooldown: time.Minute})

	got, err := r.Answer(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "model answer", got)
	assert.True(t, r.ModelEnabled())
	assert.Equal(t, StatusActive, r.Status())
}

func TestResponderReturnsErrorsThenOpensBreaker(t *testing.T) {
	p := profile.Seed()
	calls := 0
	boom := errors.New("upstream 503")
	r := NewResponder(answererFunc(func(context.Context, string) (string, error) {
		calls++
		return "", boom
	}), fallback.New(p), BreakerSettings{ConsecutiveFailures: 2, Cooldown: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := r.Answer(context.Background(), "q")
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, StatusBreakerOpen, r.Status())

	got, err := r.Answer(context.Background(), "Tell me your life story")
	require.NoError(t, err)
	assert.Equal(t, p.LifeStory, got)
	assert.Equal(t, 2, calls, "open breaker must not call the assistant")
}
