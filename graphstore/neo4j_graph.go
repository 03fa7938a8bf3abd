package graphstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"graphqa-service/logging"
)

// Neo4jGraph wraps a Neo4j driver behind the GraphExecutor contract: run a
// Cypher string, get back flat rows of column name to plain Go values.
type Neo4jGraph struct {
	Driver   neo4j.DriverWithContext
	database string
	schema   string
}

type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

func New(ctx context.Context, cfg Neo4jConfig) (*Neo4jGraph, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("connecting to neo4j: %w", err)
	}

	return &Neo4jGraph{Driver: driver, database: cfg.Database}, nil
}

func (g *Neo4jGraph) Close(ctx context.Context) error {
	return g.Driver.Close(ctx)
}

// Query runs a read query and converts every record into a map keyed by
// return column. Nodes become property bags, relationships become property
// bags with type/start/end added; see convertValue.
func (g *Neo4jGraph) Query(ctx context.Context, cypher string) ([]map[string]any, error) {
	session := g.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead, DatabaseName: g.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}

		var rows []map[string]any
		for res.Next(ctx) {
			record := res.Record()
			row := make(map[string]any, len(record.Keys))
			for i, key := range record.Keys {
				row[key] = convertValue(record.Values[i])
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]map[string]any), nil
}

// RefreshSchema introspects node labels, relationship types and property
// keys, and caches a textual rendering for the Cypher generation prompt.
func (g *Neo4jGraph) RefreshSchema(ctx context.Context) error {
	labels, err := g.listColumn(ctx, "CALL db.labels() YIELD label RETURN label")
	if err != nil {
		return fmt.Errorf("fetching node labels: %w", err)
	}

	relTypes, err := g.listColumn(ctx, "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType")
	if err != nil {
		return fmt.Errorf("fetching relationship types: %w", err)
	}

	propertyKeys, err := g.listColumn(ctx, "CALL db.propertyKeys() YIELD propertyKey RETURN propertyKey")
	if err != nil {
		return fmt.Errorf("fetching property keys: %w", err)
	}

	sort.Strings(labels)
	sort.Strings(relTypes)
	sort.Strings(propertyKeys)

	g.schema = fmt.Sprintf("Node labels: %s\nRelationship types: %s\nProperty keys: %s",
		strings.Join(labels, ", "), strings.Join(relTypes, ", "), strings.Join(propertyKeys, ", "))

	logging.Logger.Infof("Neo4j schema refreshed: %d labels, %d relationship types", len(labels), len(relTypes))
	return nil
}

// Schema returns the cached schema text, empty until RefreshSchema succeeds.
func (g *Neo4jGraph) Schema() string {
	return g.schema
}

func (g *Neo4jGraph) listColumn(ctx context.Context, cypher string) ([]string, error) {
	rows, err := g.Query(ctx, cypher)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, row := range rows {
		for _, v := range row {
			if s, ok := v.(string); ok {
				values = append(values, s)
			}
		}
	}
	return values, nil
}
