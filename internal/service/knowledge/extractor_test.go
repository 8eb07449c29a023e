package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	rows  map[string][]map[string]any
	err   error
	calls int
}

func (f *fakeQuerier) Query(_ context.Context, cypher string, _ map[string]any) ([]map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[cypher], nil
}

func sampleGraph() *fakeQuerier {
	return &fakeQuerier{rows: map[string][]map[string]any{
		nodesQuery: {
			{
				"name":        "Go",
				"description": "Systems language",
				"properties":  map[string]any{"name": "Go", "level": "advanced", "years": int64(2), "unused": ""},
			},
			{
				"name":        "Acme",
				"description": nil,
				"properties":  map[string]any{"name": "Acme", "type": "Company"},
			},
		},
		relationshipsQuery: {
			{"from_name": "Mayank", "rel_type": "KNOWS", "to_name": "Go", "rel_description": "daily", "frequency": int64(1)},
			{"from_name": "Mayank", "rel_type": "WORKED_AT", "to_name": "Acme", "rel_description": nil, "frequency": int64(1)},
		},
		statsQuery: {
			{"node_type": "Company", "count": int64(1)},
		},
	}}
}

func TestSchemaContextFormatsAndCaches(t *testing.T) {
	q := sampleGraph()
	e := NewExtractor(q)

	got, err := e.SchemaContext(context.Background())
	require.NoError(t, err)

	want := "=== KNOWLEDGE GRAPH SCHEMA ===\n\n" +
		"ENTITIES IN KNOWLEDGE GRAPH:\n\n" +
		"• Go (Skill)\n" +
		"  Description: Systems language\n" +
		"  Properties: level: advanced, years: 2\n\n" +
		"• Acme (Company)\n" +
		"  Description: No description\n\n" +
		"RELATIONSHIP PATTERNS:\n" +
		"• Mayank -[KNOWS] (daily)-> Go\n" +
		"• Mayank -[WORKED_AT]-> Acme\n\n" +
		"ENTITY TYPE SUMMARY:\n" +
		"• Company: 1 entities"
	assert.Equal(t, want, got)
	assert.Equal(t, 3, q.calls)

	again, err := e.SchemaContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 3, q.calls, "second call must be served from cache")
}

func TestSchemaContextErrorIsNotCached(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection reset")}
	e := NewExtractor(q)

	_, err := e.SchemaContext(context.Background())
	require.Error(t, err)

	q.err = nil
	q.rows = sampleGraph().rows
	got, err := e.SchemaContext(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "• Go (Skill)")
}

func TestEntityFound(t *testing.T) {
	q := &fakeQuerier{rows: map[string][]map[string]any{
		entityQuery: {{
			"name":        "Go",
			"description": "Systems language",
			"properties":  map[string]any{"name": "Go", "proficiency": "high"},
			"connections": []any{
				map[string]any{"name": "Mayank", "relationship": "KNOWS", "description": nil},
				map[string]any{"name": nil, "relationship": nil, "description": nil},
			},
		}},
	}}

	entity, err := NewExtractor(q).Entity(context.Background(), "Go")
	require.NoError(t, err)

	assert.Equal(t, "Go", entity.Name)
	assert.Equal(t, "Skill", entity.Type)
	require.Len(t, entity.Connections, 1)
	assert.Equal(t, Connection{Name: "Mayank", Relationship: "KNOWS"}, entity.Connections[0])
}

func TestEntityNotFound(t *testing.T) {
	_, err := NewExtractor(&fakeQuerier{}).Entity(context.Background(), "Rust")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestUnavailableSource(t *testing.T) {
	var s Source = Unavailable{}

	assert.False(t, s.Available())
	_, err := s.SchemaContext(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Entity(context.Background(), "Go")
	assert.ErrorIs(t, err, ErrUnavailable)
}
