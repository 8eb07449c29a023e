package knowledge

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned by a Source that has no graph behind it.
	ErrUnavailable = errors.New("knowledge graph not available")
	// ErrEntityNotFound is returned when no node carries the requested name.
	ErrEntityNotFound = errors.New("entity not found")
)

// FallbackSchema stands in for the schema when no graph is reachable.
const FallbackSchema = `Knowledge graph not available. Responding based on basic personal information:
- Personal background and experience
- Technical skills and projects
- Professional goals and growth areas`

// Source describes the candidate's knowledge graph.
type Source interface {
	// Available is decided once at construction and never changes.
	Available() bool
	// SchemaContext returns a prompt-ready description of the graph.
	SchemaContext(ctx context.Context) (string, error)
	Entity(ctx context.Context, name string) (Entity, error)
}

// Entity is one named node with its direct neighbours.
type Entity struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"`
	Properties  map[string]any `json:"properties,omitempty"`
	Connections []Connection   `json:"connections"`
}

// Connection is an edge from an Entity to a neighbour.
type Connection struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Description  string `json:"description,omitempty"`
}

// Unavailable is the Source used when no graph is configured.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) SchemaContext(context.Context) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Entity(context.Context, string) (Entity, error) {
	return Entity{}, ErrUnavailable
}

var _ Source = Unavailable{}
