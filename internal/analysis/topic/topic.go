package topic

import "strings"

// Memory categories a question can be filed under.
const (
	TechnicalSkills        = "technical_skills"
	ProfessionalExperience = "professional_experience"
	Projects               = "projects"
	PersonalQualities      = "personal_qualities"
	Background             = "background"
	General                = "general"
)

type bucket struct {
	name     string
	keywords []string
}

var categories = []bucket{
	{TechnicalSkills, []string{"skill", "technology", "programming", "framework"}},
	{ProfessionalExperience, []string{"experience", "job", "work", "career"}},
	{Projects, []string{"project", "built", "developed", "created"}},
	{PersonalQualities, []string{"superpower", "strength", "growth"}},
	{Background, []string{"story", "background", "life"}},
}

var summaryTopics = []bucket{
	{"skills", []string{"skill", "technology", "programming", "framework"}},
	{"experience", []string{"experience", "job", "work", "career"}},
	{"projects", []string{"project", "built", "developed", "created"}},
	{"personal", []string{"superpower", "strength", "growth", "misconception"}},
	{"background", []string{"story", "background", "life", "journey"}},
}

// Categorize files a question under the first matching memory category.
func Categorize(question string) string {
	q := strings.ToLower(question)
	for _, b := range categories {
		if containsAny(q, b.keywords) {
			return b.name
		}
	}
	return General
}

// Extract returns the distinct summary topics touched by questions, in order of
// first appearance.
func Extract(questions []string) []string {
	topics := make([]string, 0, len(summaryTopics))
	seen := make(map[string]bool, len(summaryTopics))
	for _, question := range questions {
		q := strings.ToLower(question)
		for _, b := range summaryTopics {
			if seen[b.name] || !containsAny(q, b.keywords) {
				continue
			}
			seen[b.name] = true
			topics = append(topics, b.name)
		}
	}
	return topics
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
