package profile

// Profile captures the candidate facts the bot answers from.
type Profile struct {
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	Experience        string   `json:"experience"`
	LifeStory         string   `json:"life_story"`
	Superpower        string   `json:"superpower"`
	GrowthAreas       []string `json:"growth_areas"`
	Misconception     string   `json:"misconception"`
	PushingBoundaries string   `json:"pushing_boundaries"`
}

// Clone returns a deep copy so callers can never mutate the seeded record.
func (p Profile) Clone() Profile {
	p.GrowthAreas = append([]string(nil), p.GrowthAreas...)
	return p
}

// Seed provides the default candidate profile.
func Seed() Profile {
	return Profile{
		Name:       "Mayank Goel",
		Role:       "Software Developer",
		Experience: "2+ years",
		LifeStory: "I'm a passionate software developer with 2+ years of experience building web applications. " +
			"I started coding in college and fell in love with creating solutions that make people's lives easier. " +
			"I've worked on various projects from e-commerce platforms to data visualization tools.",
		Superpower: "My #1 superpower is problem-solving and breaking down complex technical challenges into manageable pieces. " +
			"I have a knack for debugging and finding creative solutions when others get stuck.",
		GrowthAreas: []string{
			"System design and architecture for large-scale applications",
			"Machine learning and AI integration in web applications",
			"Leadership and mentoring junior developers",
		},
		Misconception: "My coworkers sometimes think I'm overly focused on perfection, but actually I believe in iterative improvement. " +
			"I prefer shipping working code and then refining it rather than getting stuck in analysis paralysis.",
		PushingBoundaries: "I push my boundaries by taking on projects slightly outside my comfort zone, contributing to open source, " +
			"and staying updated with new technologies. I also participate in hackathons and coding challenges to test my skills.",
	}
}
