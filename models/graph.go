package models

// GraphNode is one deduplicated node in the visualization payload. ID is a
// synthetic key local to a single response; Labels carries the store's real
// type labels for client-side color-coding.
type GraphNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// GraphRelationship endpoints are the store's own identifiers, not the
// synthetic node IDs above. Relationships are appended, never deduplicated.
type GraphRelationship struct {
	Type       string         `json:"type"`
	StartNode  string         `json:"startNode"`
	EndNode    string         `json:"endNode"`
	Properties map[string]any `json:"properties"`
}

type GraphData struct {
	Nodes         []GraphNode         `json:"nodes"`
	Relationships []GraphRelationship `json:"relationships"`
}
