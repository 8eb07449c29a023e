package interview

import (
	"context"
	"strings"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
	"github.com/zhouzirui/interview-bot/backend/internal/service/ai"
	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
	"github.com/zhouzirui/interview-bot/backend/internal/service/memory"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

const (
	// ShortAnswerReplacement is returned when the model answers with almost nothing.
	ShortAnswerReplacement = "I'm sorry, I couldn't generate a proper response to that question."

	minAnswerLength     = 10
	defaultContextLimit = 3
)

// Generator produces an answer from a question and its prompt context.
// *ai.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, question string, pc ai.PromptContext) (string, error)
}

// QuestionAnswerer is anything that can answer an interview question with a model.
type QuestionAnswerer interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

// AssistantOptions tunes an Assistant.
type AssistantOptions struct {
	ModelName    string
	ContextLimit int
}

// Assistant answers questions with the model, enriched with memory and the
// knowledge graph schema, and records every answer in memory.
type Assistant struct {
	generator    Generator
	profiles     profile.Store
	memory       memory.Store
	schema       string
	modelName    string
	contextLimit int
}

// NewAssistant builds an Assistant. The graph schema is read once here; if
// the graph is unavailable or fails, knowledge.FallbackSchema is used for the
// lifetime of the Assistant.
func NewAssistant(ctx context.Context, gen Generator, profiles profile.Store, mem memory.Store, graph knowledge.Source, opts AssistantOptions) *Assistant {
	if mem == nil {
		mem = memory.Disabled{}
	}
	if graph == nil {
		graph = knowledge.Unavailable{}
	}
	if opts.ContextLimit < 1 {
		opts.ContextLimit = defaultContextLimit
	}

	return &Assistant{
		generator:    gen,
		profiles:     profiles,
		memory:       mem,
		schema:       loadSchema(ctx, graph),
		modelName:    opts.ModelName,
		contextLimit: opts.ContextLimit,
	}
}

func loadSchema(ctx context.Context, graph knowledge.Source) string {
	if !graph.Available() {
		return knowledge.FallbackSchema
	}
	schema, err := graph.SchemaContext(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("knowledge graph schema unavailable, using fallback")
		return knowledge.FallbackSchema
	}
	return schema
}

// AnswerQuestion generates an answer for question. Generation errors are
// returned unchanged; memory failures are logged and otherwise ignored.
func (a *Assistant) AnswerQuestion(ctx context.Context, question string) (string, error) {
	var conversationContext string
	if a.memory.Available() {
		recalled, err := a.memory.RelevantContext(ctx, question, a.contextLimit)
		if err != nil {
			logx.Warn().Err(err).Msg("failed to load conversation context")
		}
		conversationContext = recalled
	}

	answer, err := a.generator.Generate(ctx, question, ai.PromptContext{
		Profile:             a.profiles.Get(),
		KnowledgeSchema:     a.schema,
		ConversationContext: conversationContext,
	})
	if err != nil {
		return "", err
	}

	if a.memory.Available() {
		metadata := map[string]string{"model": a.modelName, "enhanced": "true", "has_memory": "true"}
		if err := a.memory.RecordInteraction(ctx, question, answer, metadata); err != nil {
			logx.Warn().Err(err).Msg("failed to record interaction")
		}
	}

	if len(strings.TrimSpace(answer)) < minAnswerLength {
		logx.Warn().Int("length", len(answer)).Msg("model answer too short, replacing")
		return ShortAnswerReplacement, nil
	}
	return answer, nil
}

// KnowledgeSchema returns the schema text fixed at construction.
func (a *Assistant) KnowledgeSchema() string {
	return a.schema
}
