package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
)

type fakeGraph struct {
	schema   string
	entities map[string]knowledge.Entity
	err      error
}

func (f *fakeGraph) Available() bool { return true }

func (f *fakeGraph) SchemaContext(context.Context) (string, error) {
	return f.schema, f.err
}

func (f *fakeGraph) Entity(_ context.Context, name string) (knowledge.Entity, error) {
	if f.err != nil {
		return knowledge.Entity{}, f.err
	}
	e, ok := f.entities[name]
	if !ok {
		return knowledge.Entity{}, knowledge.ErrEntityNotFound
	}
	return e, nil
}

func serve(t *testing.T, graph knowledge.Source, path string) (int, map[string]any) {
	t.Helper()
	r := chi.NewRouter()
	New(graph).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))

	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return resp.Code, out
}

func TestSchemaUnavailable(t *testing.T) {
	code, body := serve(t, nil, "/knowledge/schema")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, knowledge.FallbackSchema, body["schema"])
}

func TestSchema(t *testing.T) {
	code, body := serve(t, &fakeGraph{schema: "=== KNOWLEDGE GRAPH SCHEMA ==="}, "/knowledge/schema")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "=== KNOWLEDGE GRAPH SCHEMA ===", body["schema"])
}

func TestSchemaQueryFailureHidesDetails(t *testing.T) {
	code, body := serve(t, &fakeGraph{err: errors.New("bolt: connection reset")}, "/knowledge/schema")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestEntityLookup(t *testing.T) {
	graph := &fakeGraph{entities: map[string]knowledge.Entity{
		"Go": {Name: "Go", Type: "Skill", Connections: []knowledge.Connection{{Name: "Mayank Goel", Relationship: "HAS_SKILL"}}},
	}}

	code, body := serve(t, graph, "/knowledge/entities/Go")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	entity := body["entity"].(map[string]any)
	assert.Equal(t, "Skill", entity["type"])

	code, body = serve(t, graph, "/knowledge/entities/Rust")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
}

func TestEntityUnavailable(t *testing.T) {
	code, body := serve(t, knowledge.Unavailable{}, "/knowledge/entities/Go")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Knowledge graph not available", body["message"])
}
