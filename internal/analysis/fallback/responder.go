package fallback

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
)

// rule maps trigger keywords to the profile answer they select.
type rule struct {
	keywords []string
	answer   func(p profile.Profile) string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{
		keywords: []string{"life story", "background"},
		answer:   func(p profile.Profile) string { return p.LifeStory },
	},
	{
		keywords: []string{"superpower", "strength"},
		answer:   func(p profile.Profile) string { return p.Superpower },
	},
	{
		keywords: []string{"growth", "improve"},
		answer: func(p profile.Profile) string {
			return "The top 3 areas I'd like to grow in are: " + strings.Join(p.GrowthAreas, ", ")
		},
	},
	{
		keywords: []string{"misconception"},
		answer:   func(p profile.Profile) string { return p.Misconception },
	},
	{
		keywords: []string{"boundaries", "limits"},
		answer:   func(p profile.Profile) string { return p.PushingBoundaries },
	},
}

// Responder answers from the profile without any model.
type Responder struct {
	profile profile.Profile
}

// New returns a Responder over a private copy of p.
func New(p profile.Profile) *Responder {
	return &Responder{profile: p.Clone()}
}

// Respond returns the canned answer for question. It never fails and never
// returns an empty string for a non-empty profile.
func (r *Responder) Respond(question string) string {
	normalized := strings.ToLower(question)
	for _, rl := range rules {
		for _, kw := range rl.keywords {
			if strings.Contains(normalized, kw) {
				return rl.answer(r.profile)
			}
		}
	}
	return generic(r.profile)
}

func generic(p profile.Profile) string {
	return fmt.Sprintf("That's a great question! As a %s with %s of experience, I believe in continuous learning and growth. "+
		"I'd be happy to discuss this further in our conversation.", p.Role, p.Experience)
}
