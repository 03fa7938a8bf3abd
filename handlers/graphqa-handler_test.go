package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphqa-service/models"
	"graphqa-service/services"
)

type stubChain struct {
	result *models.ChainResult
	err    error
}

func (s *stubChain) Invoke(ctx context.Context, question string) (*models.ChainResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubGraph struct {
	rows   []map[string]any
	schema string
}

func (s *stubGraph) Query(ctx context.Context, cypher string) ([]map[string]any, error) {
	return s.rows, nil
}

func (s *stubGraph) Schema() string {
	return s.schema
}

func newTestHandler(chain *stubChain, graph *stubGraph) *GraphQAHandler {
	svc := services.NewGraphQAService(chain, graph, nil, "llama3-8b-8192")
	return NewGraphQAHandler(svc)
}

func TestHealthCheck(t *testing.T) {
	handler := NewGraphQAHandler(nil)

	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Graph Q&A API is running")
}

func TestAskQuestion(t *testing.T) {
	chain := &stubChain{result: &models.ChainResult{
		Answer: "Tom Hanks acted in 2 movies.",
		Steps: []models.ChainStep{
			{Query: "MATCH (p:Person) RETURN p.name"},
			{Context: []map[string]any{{"p.name": "Tom Hanks"}}},
		},
	}}
	graph := &stubGraph{rows: []map[string]any{
		{"p": map[string]any{"name": "Tom Hanks"}, "p_labels": []any{"Person"}},
	}}
	handler := newTestHandler(chain, graph)

	body, _ := json.Marshal(models.QueryRequest{Question: "How many movies did Tom Hanks act in?"})
	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response models.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Tom Hanks acted in 2 movies.", response.Answer)
	assert.Equal(t, "MATCH (p:Person) RETURN p.name", response.GeneratedCypher)
	require.NotNil(t, response.GraphData)
	assert.Len(t, response.GraphData.Nodes, 1)
	assert.Empty(t, response.Error)
}

func TestAskQuestionEmptyQuestion(t *testing.T) {
	handler := newTestHandler(&stubChain{}, &stubGraph{})

	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": ""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskQuestionInvalidBody(t *testing.T) {
	handler := newTestHandler(&stubChain{}, &stubGraph{})

	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskQuestionChainErrorStaysInBody(t *testing.T) {
	chain := &stubChain{err: assertError("boom")}
	handler := newTestHandler(chain, &stubGraph{})

	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "q"}`)))

	// Chain failures complete the request; the error rides in the body.
	require.Equal(t, http.StatusOK, rec.Code)

	var response models.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "An error occurred: boom", response.Error)
	assert.Nil(t, response.GraphData)
}

func TestServiceUnavailable(t *testing.T) {
	handler := NewGraphQAHandler(nil)

	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "q"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	handler.GetStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetStatus(t *testing.T) {
	handler := newTestHandler(&stubChain{}, &stubGraph{schema: "Node labels: Person"})

	rec := httptest.NewRecorder()
	handler.GetStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Neo4jConnected)
	assert.True(t, status.QAChainReady)
	assert.Equal(t, "llama3-8b-8192", status.LLMModelName)
}

func TestSubmitFeedback(t *testing.T) {
	handler := NewGraphQAHandler(nil) // feedback works without the service

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "positive rating accepted",
			body:       `{"question": "q", "answer": "a", "rating": "positive"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "negative rating with comment accepted",
			body:       `{"question": "q", "answer": "a", "rating": "negative", "comment": "wrong movie"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown rating rejected",
			body:       `{"question": "q", "answer": "a", "rating": "meh"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body rejected",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.SubmitFeedback(rec, httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "Thank you for your feedback!")
			}
		})
	}
}

type assertError string

func (e assertError) Error() string { return string(e) }
