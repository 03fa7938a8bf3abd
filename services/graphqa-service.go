package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"

	"graphqa-service/interfaces"
	"graphqa-service/logging"
	"graphqa-service/models"
)

const (
	// Error code Neo4j reports when the LLM generated invalid Cypher.
	syntaxErrorMarker = "Neo.ClientError.Statement.SyntaxError"

	syntaxErrorMessage = "The LLM generated an invalid Cypher query. Please try rephrasing your question."
	noQuerySentinel    = "No query generated."
)

// GraphQAService answers natural-language questions over the graph. The QA
// chain and graph executor are injected so tests substitute fakes.
type GraphQAService struct {
	chain    interfaces.QAChain
	graph    interfaces.GraphExecutor
	breaker  *gobreaker.CircuitBreaker
	llmModel string
}

func NewGraphQAService(chain interfaces.QAChain, graph interfaces.GraphExecutor, breaker *gobreaker.CircuitBreaker, llmModel string) *GraphQAService {
	return &GraphQAService{
		chain:    chain,
		graph:    graph,
		breaker:  breaker,
		llmModel: llmModel,
	}
}

// Query runs the QA chain exactly once and assembles the response. Every
// failure resolves to a returned value with the Error field set; nothing
// escapes this boundary.
func (s *GraphQAService) Query(ctx context.Context, question string) models.QueryResponse {
	logging.Logger.Infof("Invoking chain with question: %s", question)

	result, err := s.invokeChain(ctx, question)
	if err != nil {
		logging.Logger.Errorf("Error during chain invocation: %v", err)
		if strings.Contains(err.Error(), syntaxErrorMarker) {
			return models.QueryResponse{Error: syntaxErrorMessage}
		}
		return models.QueryResponse{Error: fmt.Sprintf("An error occurred: %v", err)}
	}

	generatedCypher := noQuerySentinel
	var graphData *models.GraphData

	if len(result.Steps) > 0 {
		generatedCypher = result.Steps[0].Query

		// The chain reports rows either on the first step or on a
		// follow-up context-only step.
		rows := result.Steps[0].Context
		if len(rows) == 0 && len(result.Steps) > 1 {
			rows = result.Steps[1].Context
		}

		if len(rows) > 0 {
			graphData = s.extractGraphData(ctx, generatedCypher)
			if graphData != nil {
				logging.Logger.Infof("Graph data extracted: nodes=%d, relationships=%d",
					len(graphData.Nodes), len(graphData.Relationships))
			}
		}
	}

	answer := result.Answer
	if answer == "" {
		answer = "No answer found."
	}

	return models.QueryResponse{
		Answer:          answer,
		GeneratedCypher: generatedCypher,
		GraphData:       graphData,
	}
}

func (s *GraphQAService) invokeChain(ctx context.Context, question string) (*models.ChainResult, error) {
	if s.breaker == nil {
		return s.chain.Invoke(ctx, question)
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.chain.Invoke(ctx, question)
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.ChainResult), nil
}

// GetStatus reports the health of the service's collaborators.
func (s *GraphQAService) GetStatus() models.StatusResponse {
	schema := ""
	if s.graph != nil {
		schema = s.graph.Schema()
	}
	if schema == "" {
		schema = "Not connected"
	}

	return models.StatusResponse{
		Neo4jConnected: s.graph != nil && s.graph.Schema() != "",
		Neo4jSchema:    schema,
		LLMInitialized: s.chain != nil,
		QAChainReady:   s.chain != nil,
		LLMModelName:   s.llmModel,
	}
}
