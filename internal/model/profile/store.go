package profile

// Store exposes the candidate profile to services and HTTP handlers.
type Store interface {
	Get() Profile
}

// MemoryStore implements Store with a profile fixed at construction.
type MemoryStore struct {
	item Profile
}

// NewMemoryStore returns a MemoryStore holding a private copy of p.
func NewMemoryStore(p Profile) *MemoryStore {
	return &MemoryStore{item: p.Clone()}
}

// Get returns a copy of the stored profile.
func (s *MemoryStore) Get() Profile {
	return s.item.Clone()
}
