package services

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// serializeProperty converts a graph property value into a JSON-safe one.
// Total: it terminates on any input and never fails. Temporal types become
// their canonical text form, containers recurse, scalars pass through, and
// anything unrecognized falls back to its text representation.
func serializeProperty(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case neo4j.Date:
		return v.String()
	case neo4j.LocalTime:
		return v.String()
	case neo4j.Time:
		return v.String()
	case neo4j.LocalDateTime:
		return v.String()
	case neo4j.Duration:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = serializeProperty(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = serializeProperty(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case bool, string, int, int8, int16, int32, int64, float32, float64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func serializeProperties(bag map[string]any) map[string]any {
	out := make(map[string]any, len(bag))
	for k, v := range bag {
		out[k] = serializeProperty(v)
	}
	return out
}
