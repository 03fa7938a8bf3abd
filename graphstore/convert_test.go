package graphstore

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertValueNode(t *testing.T) {
	node := neo4j.Node{
		ElementId: "4:abc:0",
		Labels:    []string{"Person"},
		Props:     map[string]any{"name": "Tom Hanks", "born": int64(1956)},
	}

	got := convertValue(node)

	bag, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tom Hanks", bag["name"])
	assert.Equal(t, int64(1956), bag["born"])
	// Labels travel separately via the *_labels return columns, never
	// inside the property bag.
	assert.NotContains(t, bag, "labels")
}

func TestConvertValueRelationship(t *testing.T) {
	rel := neo4j.Relationship{
		ElementId:      "5:abc:9",
		StartElementId: "4:abc:0",
		EndElementId:   "4:abc:1",
		Type:           "ACTED_IN",
		Props:          map[string]any{"roles": []any{"Josh"}},
	}

	got := convertValue(rel)

	bag, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ACTED_IN", bag["type"])
	assert.Equal(t, "4:abc:0", bag["start"])
	assert.Equal(t, "4:abc:1", bag["end"])
	assert.Equal(t, []any{"Josh"}, bag["roles"])
}

func TestConvertValueRelationshipWithoutProps(t *testing.T) {
	rel := neo4j.Relationship{
		StartElementId: "a",
		EndElementId:   "b",
		Type:           "DIRECTED",
	}

	bag, ok := convertValue(rel).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DIRECTED", bag["type"])
}

func TestConvertValueContainers(t *testing.T) {
	value := []any{
		neo4j.Node{Props: map[string]any{"name": "a"}},
		map[string]any{"inner": neo4j.Node{Props: map[string]any{"name": "b"}}},
		"plain",
	}

	got, ok := convertValue(value).([]any)
	require.True(t, ok)
	require.Len(t, got, 3)

	first, ok := got[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", first["name"])

	second, ok := got[1].(map[string]any)
	require.True(t, ok)
	inner, ok := second["inner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b", inner["name"])

	assert.Equal(t, "plain", got[2])
}

func TestConvertValuePath(t *testing.T) {
	path := neo4j.Path{
		Nodes: []neo4j.Node{
			{Props: map[string]any{"name": "Tom Hanks"}},
			{Props: map[string]any{"title": "Big"}},
		},
		Relationships: []neo4j.Relationship{
			{Type: "ACTED_IN", StartElementId: "a", EndElementId: "b"},
		},
	}

	got, ok := convertValue(path).(map[string]any)
	require.True(t, ok)
	assert.Len(t, got["nodes"], 2)
	assert.Len(t, got["relationships"], 1)
}

func TestConvertValueScalarPassthrough(t *testing.T) {
	assert.Equal(t, int64(7), convertValue(int64(7)))
	assert.Equal(t, "text", convertValue("text"))
	assert.Nil(t, convertValue(nil))
}
