package interfaces

import (
	"context"

	"graphqa-service/models"
)

// QAChain answers one natural-language question, reporting the generated
// query and raw rows as intermediate steps.
type QAChain interface {
	Invoke(ctx context.Context, question string) (*models.ChainResult, error)
}

// GraphExecutor runs a query against the graph store and returns flat rows
// of column name to value. Schema reports the cached store schema.
type GraphExecutor interface {
	Query(ctx context.Context, cypher string) ([]map[string]any, error)
	Schema() string
}
