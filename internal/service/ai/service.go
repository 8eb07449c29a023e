package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/interview-bot/backend/internal/config"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

// ErrEmptyResponse is returned when the model answers with no message.
var ErrEmptyResponse = errors.New("model returned no message")

// Service runs interview questions through a prompt -> chat model chain.
type Service struct {
	modelName string
	template  PromptTemplate
	chain     compose.Runnable[map[string]any, *schema.Message]
	callbacks compose.Option
}

// NewService creates the chat model described by cfg and compiles the chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, cfg.ModelName())
}

// NewServiceWithModel compiles the chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel, modelName string) (*Service, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		modelName: modelName,
		template:  DefaultTemplate,
		chain:     runnable,
		callbacks: compose.WithCallbacks(newCallbacks()),
	}, nil
}

// ModelName reports the configured model identifier.
func (s *Service) ModelName() string {
	return s.modelName
}

// Generate answers question using the supplied context.
func (s *Service) Generate(ctx context.Context, question string, pc PromptContext) (string, error) {
	input := map[string]any{
		"system": s.template.BuildSystemPrompt(pc),
		"query":  question,
	}

	response, err := s.chain.Invoke(ctx, input, s.callbacks)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", ErrEmptyResponse
	}

	logx.Info().Str("model", s.modelName).Int("length", len(response.Content)).Msg("generated interview answer")
	return response.Content, nil
}
