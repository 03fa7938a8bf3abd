package graphstore

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// convertValue flattens driver entity types into plain property bags so the
// rest of the pipeline never touches driver types. A relationship's bag
// carries its type and endpoint element ids under the type/start/end keys,
// next to its own properties.
func convertValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		return convertMap(v.Props)
	case neo4j.Relationship:
		bag := convertMap(v.Props)
		if bag == nil {
			bag = make(map[string]any, 3)
		}
		bag["type"] = v.Type
		bag["start"] = v.StartElementId
		bag["end"] = v.EndElementId
		return bag
	case neo4j.Path:
		nodes := make([]any, 0, len(v.Nodes))
		for _, n := range v.Nodes {
			nodes = append(nodes, convertValue(n))
		}
		rels := make([]any, 0, len(v.Relationships))
		for _, r := range v.Relationships {
			rels = append(rels, convertValue(r))
		}
		return map[string]any{"nodes": nodes, "relationships": rels}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convertValue(item)
		}
		return out
	case map[string]any:
		return convertMap(v)
	default:
		return value
	}
}

func convertMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertValue(v)
	}
	return out
}
