package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"graphqa-service/logging"
	"graphqa-service/models"
)

const (
	labelsSuffix   = "_labels"
	vizRowLimit    = 50
	defaultRelType = "RELATED_TO"
)

// Keywords that terminate a MATCH clause. Search is positional and
// case-insensitive; nested or multi-clause queries degrade gracefully.
var clauseTerminators = []string{"WHERE", "RETURN", "ORDER BY", "LIMIT", "WITH"}

// Node variables look like (name) or (name:Label) or (name:Label|Other);
// relationship variables like [name] or [name:TYPE]. Patterns carrying
// inline property maps are deliberately not recognized.
var (
	nodeVarPattern = regexp.MustCompile(`\((\w+)(?::\w+(?:\|\w+)*)?\)`)
	relVarPattern  = regexp.MustCompile(`\[(\w+)(?::\w+)?\]`)
)

// extractVariables pulls the ordered, deduplicated node and relationship
// variable names out of a query's MATCH clause. A query without MATCH
// carries no visualizable structure and yields two empty sets.
func extractVariables(cypher string) (nodeVars, relVars []string) {
	matchClause, ok := matchClauseOf(cypher)
	if !ok {
		return nil, nil
	}

	nodeVars = collectVars(nodeVarPattern, matchClause)
	relVars = collectVars(relVarPattern, matchClause)
	return nodeVars, relVars
}

// matchClauseOf locates the MATCH clause: from the MATCH keyword to the
// first terminating keyword after it, or end of text.
func matchClauseOf(cypher string) (string, bool) {
	upper := strings.ToUpper(cypher)

	matchIdx := strings.Index(upper, "MATCH")
	if matchIdx == -1 {
		return "", false
	}

	clauseEnd := len(cypher)
	for _, keyword := range clauseTerminators {
		if idx := strings.Index(upper[matchIdx:], keyword); idx != -1 && matchIdx+idx < clauseEnd {
			clauseEnd = matchIdx + idx
		}
	}

	return cypher[matchIdx:clauseEnd], true
}

func collectVars(pattern *regexp.Regexp, clause string) []string {
	var ordered []string
	seen := make(map[string]bool)
	for _, m := range pattern.FindAllStringSubmatch(clause, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			ordered = append(ordered, name)
		}
	}
	return ordered
}

// buildVisualizationQuery rewrites a query so it returns whole graph
// elements plus each node's label list, capped at 50 rows. Queries it
// cannot recognize come back unchanged; callers depend on graceful
// degradation, not rejection.
func buildVisualizationQuery(cypher string) string {
	matchClause, ok := matchClauseOf(cypher)
	if !ok {
		return cypher
	}
	matchClause = strings.TrimSpace(matchClause)

	upper := strings.ToUpper(cypher)
	matchIdx := strings.Index(upper, "MATCH")

	whereClause := ""
	whereIdx := indexFrom(upper, "WHERE", matchIdx)
	returnIdx := indexFrom(upper, "RETURN", matchIdx)
	if whereIdx != -1 && (returnIdx == -1 || whereIdx < returnIdx) {
		whereEnd := len(cypher)
		if returnIdx != -1 {
			whereEnd = returnIdx
		}
		whereClause = " " + strings.TrimSpace(cypher[whereIdx:whereEnd])
	}

	nodeVars, relVars := extractVariables(cypher)
	if len(nodeVars) == 0 && len(relVars) == 0 {
		logging.Logger.Warnf("Could not extract variables from MATCH pattern: %s", cypher)
		return cypher
	}

	var returnParts []string
	for _, v := range nodeVars {
		returnParts = append(returnParts, v, fmt.Sprintf("labels(%s) as %s%s", v, v, labelsSuffix))
	}
	returnParts = append(returnParts, relVars...)

	return fmt.Sprintf("%s%s RETURN %s LIMIT %d", matchClause, whereClause, strings.Join(returnParts, ", "), vizRowLimit)
}

func indexFrom(s, substr string, from int) int {
	idx := strings.Index(s[from:], substr)
	if idx == -1 {
		return -1
	}
	return from + idx
}

// extractGraphData re-executes the generated query in its visualization
// form and reconstructs a deduplicated subgraph from the rows. This path is
// best-effort: any failure degrades to a nil payload, never an error.
func (s *GraphQAService) extractGraphData(ctx context.Context, cypher string) *models.GraphData {
	if !strings.Contains(strings.ToUpper(cypher), "MATCH") {
		logging.Logger.Info("Query doesn't use MATCH, skipping graph extraction")
		return nil
	}

	vizQuery := buildVisualizationQuery(cypher)
	logging.Logger.Infof("Executing graph query: %s", vizQuery)

	rows, err := s.graph.Query(ctx, vizQuery)
	if err != nil {
		logging.Logger.Errorf("Error executing visualization query: %v", err)
		return nil
	}

	nodeVars, relVars := extractVariables(cypher)
	return buildGraphData(rows, nodeVars, relVars)
}

// buildGraphData folds flat rows into a node set keyed by synthetic id and
// a relationship list. Columns bound to neither a recognized node nor
// relationship variable are skipped silently, as are values of an
// unexpected shape. Rows are walked in declared variable order so node
// order stays deterministic for a fixed input.
func buildGraphData(rows []map[string]any, nodeVars, relVars []string) *models.GraphData {
	nodes := make(map[string]*models.GraphNode)
	var nodeOrder []string
	fallbackLabels := make(map[string]bool)
	var relationships []models.GraphRelationship

	for _, row := range rows {
		// First pass: collect each variable's true label list from the
		// companion *_labels columns.
		labelsMap := make(map[string][]string)
		for key, value := range row {
			if !strings.HasSuffix(key, labelsSuffix) {
				continue
			}
			if labels := toStringList(value); labels != nil {
				labelsMap[strings.TrimSuffix(key, labelsSuffix)] = labels
			}
		}

		// Second pass: fold property bags into nodes and relationships.
		for _, key := range nodeVars {
			bag, ok := row[key].(map[string]any)
			if !ok {
				continue
			}

			idProp, found := firstProperty(bag, "name", "id", "title")
			if !found {
				idProp = structuralHash(bag)
			}
			nodeID := key + "_" + idProp

			if existing, present := nodes[nodeID]; present {
				// Only the label list may be filled in later, when an
				// earlier row lacked the *_labels column.
				if fallbackLabels[nodeID] {
					if labels, has := labelsMap[key]; has {
						existing.Labels = labels
						delete(fallbackLabels, nodeID)
					}
				}
				continue
			}

			label, found := firstProperty(bag, "name", "id", "title")
			if !found {
				label = key
			}

			labels, has := labelsMap[key]
			if !has {
				labels = []string{capitalize(key)}
				fallbackLabels[nodeID] = true
			}

			nodes[nodeID] = &models.GraphNode{
				ID:         nodeID,
				Label:      label,
				Labels:     labels,
				Properties: serializeProperties(bag),
			}
			nodeOrder = append(nodeOrder, nodeID)
		}

		for _, key := range relVars {
			bag, ok := row[key].(map[string]any)
			if !ok {
				continue
			}

			relType := defaultRelType
			if t, found := firstProperty(bag, "type"); found {
				relType = t
			}
			startID, hasStart := firstProperty(bag, "start")
			endID, hasEnd := firstProperty(bag, "end")
			if !hasStart || !hasEnd {
				continue
			}

			props := make(map[string]any, len(bag))
			for k, v := range bag {
				if k == "type" || k == "start" || k == "end" {
					continue
				}
				props[k] = serializeProperty(v)
			}

			relationships = append(relationships, models.GraphRelationship{
				Type:       relType,
				StartNode:  startID,
				EndNode:    endID,
				Properties: props,
			})
		}
	}

	if len(nodes) == 0 && len(relationships) == 0 {
		return nil
	}

	data := &models.GraphData{Relationships: relationships}
	if data.Relationships == nil {
		data.Relationships = []models.GraphRelationship{}
	}
	data.Nodes = make([]models.GraphNode, 0, len(nodeOrder))
	for _, id := range nodeOrder {
		data.Nodes = append(data.Nodes, *nodes[id])
	}
	return data
}

// firstProperty returns the first of the named properties present with a
// non-empty textual value.
func firstProperty(bag map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := bag[key]
		if !ok || value == nil {
			continue
		}
		text := fmt.Sprintf("%v", value)
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// structuralHash derives a request-scoped identity for a node with none of
// the preferred identifying properties. Not stable across processes.
func structuralHash(bag map[string]any) string {
	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v;", k, bag[k])
	}
	return strconv.FormatUint(h.Sum64(), 10)
}

func toStringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		if strs, ok := value.([]string); ok {
			return strs
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
