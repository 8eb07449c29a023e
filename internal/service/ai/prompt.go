package ai

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
)

// PromptContext carries everything the system prompt is built from.
type PromptContext struct {
	Profile             profile.Profile
	KnowledgeSchema     string
	ConversationContext string
}

// PromptTemplate defines the structure of the interview system prompt.
type PromptTemplate struct {
	Role       string
	Guidelines []string
}

// DefaultTemplate is the interviewee persona used for every question.
var DefaultTemplate = PromptTemplate{
	Role: "You have to act as a software engineer that is being interviewed for a job. " +
		"You have access to a knowledge graph schema and conversation memory to provide context-aware, professional responses, " +
		"as well as personal background information. The user will ask you interview questions about your background, skills, " +
		"experience, and projects. Respond in a professional manner suitable for job interviews.",
	Guidelines: []string{
		"Give professional, concise, and relevant answers.",
		"Sound confident and knowledgeable.",
		"Act like a human being, not an AI model, because your answer will be converted to speech.",
		"Keep answers under 100 words.",
		"Use a friendly and engaging tone.",
		"Do not make up answers or hallucinate information.",
		"Stay on topic and address the question directly.",
		"Do not give repetitive or generic answers.",
		"Follow the STAR method (Situation, Task, Action, Result) when applicable.",
		"Use the knowledge graph schema to inform answers about entities and relationships.",
		"Leverage conversation memory to maintain context and coherence.",
		"Reference personal background information where relevant.",
	},
}

// BuildSystemPrompt renders the template with the candidate's context.
func (t PromptTemplate) BuildSystemPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString(t.Role)
	b.WriteString("\n\nGuidelines:\n- ")
	b.WriteString(strings.Join(t.Guidelines, "\n- "))

	b.WriteString("\n\nPersonal context:\n")
	b.WriteString(PersonalContext(pc.Profile))

	if schema := strings.TrimSpace(pc.KnowledgeSchema); schema != "" {
		b.WriteString("\n\nKnowledge graph schema:\n")
		b.WriteString(schema)
	}

	if conversation := strings.TrimSpace(pc.ConversationContext); conversation != "" {
		b.WriteString("\n\nConversation context:\n")
		b.WriteString(conversation)
	}
	return b.String()
}

// PersonalContext formats the profile as the block the model reads about the candidate.
func PersonalContext(p profile.Profile) string {
	return fmt.Sprintf(`Name: %s
Role: %s
Experience: %s

Background:
%s

Key Strengths:
%s

Growth Areas:
%s

Professional Insights:
- Misconception: %s
- Boundary Pushing: %s`,
		p.Name,
		p.Role,
		p.Experience,
		p.LifeStory,
		p.Superpower,
		strings.Join(p.GrowthAreas, ", "),
		p.Misconception,
		p.PushingBoundaries,
	)
}
