package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
)

// fakeChatModel records the prompt it receives and replies with a canned message.
type fakeChatModel struct {
	reply    string
	err      error
	received []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.received = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func TestGenerateBuildsPromptAndReturnsAnswer(t *testing.T) {
	fake := &fakeChatModel{reply: "I break big problems into small ones."}
	svc, err := NewServiceWithModel(context.Background(), fake, "fake-model")
	require.NoError(t, err)

	answer, err := svc.Generate(context.Background(), "What is your superpower?", PromptContext{
		Profile:             profile.Seed(),
		KnowledgeSchema:     "=== KNOWLEDGE GRAPH SCHEMA ===",
		ConversationContext: "=== PREVIOUS DISCUSSIONS ===\nPreviously asked: hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "I break big problems into small ones.", answer)
	assert.Equal(t, "fake-model", svc.ModelName())

	require.Len(t, fake.received, 2)
	system := fake.received[0]
	assert.Equal(t, schema.System, system.Role)
	assert.Contains(t, system.Content, "Keep answers under 100 words.")
	assert.Contains(t, system.Content, "Name: Mayank Goel")
	assert.Contains(t, system.Content, "=== KNOWLEDGE GRAPH SCHEMA ===")
	assert.Contains(t, system.Content, "Previously asked: hi")

	user := fake.received[1]
	assert.Equal(t, schema.User, user.Role)
	assert.Equal(t, "What is your superpower?", user.Content)
}

func TestGenerateKeepsBracesInQuestion(t *testing.T) {
	fake := &fakeChatModel{reply: "ok"}
	svc, err := NewServiceWithModel(context.Background(), fake, "fake-model")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "Explain map[string]{} in Go", PromptContext{Profile: profile.Seed()})
	require.NoError(t, err)
	assert.Equal(t, "Explain map[string]{} in Go", fake.received[1].Content)
}

func TestGeneratePropagatesModelError(t *testing.T) {
	boom := errors.New("rate limited")
	svc, err := NewServiceWithModel(context.Background(), &fakeChatModel{err: boom}, "fake-model")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "q", PromptContext{Profile: profile.Seed()})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limited"))
}

func TestNewServiceWithModelRequiresModel(t *testing.T) {
	_, err := NewServiceWithModel(context.Background(), nil, "x")
	assert.Error(t, err)
}

func TestBuildSystemPromptOmitsEmptySections(t *testing.T) {
	prompt := DefaultTemplate.BuildSystemPrompt(PromptContext{Profile: profile.Seed()})

	assert.NotContains(t, prompt, "Knowledge graph schema:")
	assert.NotContains(t, prompt, "Conversation context:")
	assert.Contains(t, prompt, "Growth Areas:\nSystem design and architecture for large-scale applications, ")
}
