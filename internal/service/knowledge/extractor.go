package knowledge

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/zhouzirui/interview-bot/backend/internal/config"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

const (
	nodesQuery = `MATCH (n)
WHERE n.name IS NOT NULL
RETURN n.name AS name, n.description AS description, properties(n) AS properties
ORDER BY n.name
LIMIT 50`

	relationshipsQuery = `MATCH (a)-[r]->(b)
WHERE a.name IS NOT NULL AND b.name IS NOT NULL
RETURN a.name AS from_name, type(r) AS rel_type, b.name AS to_name,
       r.description AS rel_description, count(*) AS frequency
ORDER BY frequency DESC
LIMIT 15`

	statsQuery = `MATCH (n) WHERE n.name IS NOT NULL
WITH n.type AS node_type, count(n) AS count
WHERE node_type IS NOT NULL
RETURN node_type, count
ORDER BY count DESC`

	entityQuery = `MATCH (n {name: $name})
OPTIONAL MATCH (n)-[r]-(related)
RETURN n.name AS name, n.description AS description,
       properties(n) AS properties,
       collect(DISTINCT {
           name: related.name,
           relationship: type(r),
           description: related.description
       }) AS connections`

	maxListedProperties = 3
)

// Querier runs a read query and returns each record as a map.
type Querier interface {
	Query(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Extractor reads the graph schema through a Querier and caches the first
// successful rendering.
type Extractor struct {
	q     Querier
	close func(ctx context.Context) error

	mu    sync.Mutex
	cache string
}

// NewExtractor wraps q. It does not own any connection.
func NewExtractor(q Querier) *Extractor {
	return &Extractor{q: q}
}

// Connect opens a Neo4j driver for cfg and verifies connectivity.
func Connect(ctx context.Context, cfg config.GraphConfig) (*Extractor, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	e := NewExtractor(&driverQuerier{driver: driver})
	e.close = driver.Close
	return e, nil
}

// Close releases the driver when the Extractor owns one.
func (e *Extractor) Close(ctx context.Context) error {
	if e.close == nil {
		return nil
	}
	return e.close(ctx)
}

func (e *Extractor) Available() bool { return true }

// SchemaContext renders entities, relationship patterns and type counts.
func (e *Extractor) SchemaContext(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache != "" {
		return e.cache, nil
	}

	nodes, err := e.q.Query(ctx, nodesQuery, nil)
	if err != nil {
		return "", fmt.Errorf("query nodes: %w", err)
	}
	rels, err := e.q.Query(ctx, relationshipsQuery, nil)
	if err != nil {
		return "", fmt.Errorf("query relationships: %w", err)
	}
	stats, err := e.q.Query(ctx, statsQuery, nil)
	if err != nil {
		return "", fmt.Errorf("query type stats: %w", err)
	}

	e.cache = formatSchema(nodes, rels, stats)
	logx.Info().Int("entities", len(nodes)).Int("relationships", len(rels)).Msg("knowledge graph schema cached")
	return e.cache, nil
}

// Entity looks up a node by its name property.
func (e *Extractor) Entity(ctx context.Context, name string) (Entity, error) {
	rows, err := e.q.Query(ctx, entityQuery, map[string]any{"name": name})
	if err != nil {
		return Entity{}, fmt.Errorf("query entity %q: %w", name, err)
	}
	if len(rows) == 0 || rows[0]["name"] == nil {
		return Entity{}, ErrEntityNotFound
	}

	row := rows[0]
	props, _ := row["properties"].(map[string]any)
	entity := Entity{
		Name:        str(row["name"]),
		Description: str(row["description"]),
		Type:        InferType(props),
		Properties:  props,
		Connections: []Connection{},
	}

	conns, _ := row["connections"].([]any)
	for _, raw := range conns {
		c, ok := raw.(map[string]any)
		if !ok || c["name"] == nil {
			continue
		}
		entity.Connections = append(entity.Connections, Connection{
			Name:         str(c["name"]),
			Relationship: str(c["relationship"]),
			Description:  str(c["description"]),
		})
	}
	return entity, nil
}

func formatSchema(nodes, rels, stats []map[string]any) string {
	parts := []string{"=== KNOWLEDGE GRAPH SCHEMA ===", "", "ENTITIES IN KNOWLEDGE GRAPH:"}

	for _, node := range nodes {
		props, _ := node["properties"].(map[string]any)
		description := str(node["description"])
		if description == "" {
			description = "No description"
		}

		parts = append(parts, "", fmt.Sprintf("• %s (%s)", str(node["name"]), InferType(props)))
		parts = append(parts, "  Description: "+description)
		if summary := summarizeProperties(props); summary != "" {
			parts = append(parts, "  Properties: "+summary)
		}
	}

	parts = append(parts, "", "RELATIONSHIP PATTERNS:")
	for _, rel := range rels {
		desc := ""
		if d := str(rel["rel_description"]); d != "" {
			desc = " (" + d + ")"
		}
		parts = append(parts, fmt.Sprintf("• %s -[%s]%s-> %s", str(rel["from_name"]), str(rel["rel_type"]), desc, str(rel["to_name"])))
	}

	if len(stats) > 0 {
		parts = append(parts, "", "ENTITY TYPE SUMMARY:")
		for _, stat := range stats {
			parts = append(parts, fmt.Sprintf("• %s: %v entities", str(stat["node_type"]), stat["count"]))
		}
	}
	return strings.Join(parts, "\n")
}

// summarizeProperties lists up to three non-empty properties other than
// name, description and type, in key order.
func summarizeProperties(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k, v := range props {
		switch k {
		case "name", "description", "type":
			continue
		}
		if isEmpty(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxListedProperties {
		keys = keys[:maxListedProperties]
	}

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %v", k, props[k])
	}
	return strings.Join(pairs, ", ")
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// driverQuerier runs queries in short-lived read sessions.
type driverQuerier struct {
	driver neo4j.DriverWithContext
}

func (d *driverQuerier) Query(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for result.Next(ctx) {
		rows = append(rows, result.Record().AsMap())
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

var _ Source = (*Extractor)(nil)
