package models

type QueryRequest struct {
	Question string `json:"question"`
}

type QueryResponse struct {
	Answer          string     `json:"answer"`
	GeneratedCypher string     `json:"generated_cypher,omitempty"`
	GraphData       *GraphData `json:"graph_data,omitempty"`
	Error           string     `json:"error,omitempty"`
}

type StatusResponse struct {
	Neo4jConnected bool   `json:"neo4j_connected"`
	Neo4jSchema    string `json:"neo4j_schema"`
	LLMInitialized bool   `json:"llm_initialized"`
	QAChainReady   bool   `json:"qa_chain_ready"`
	LLMModelName   string `json:"llm_model_name,omitempty"`
}

type FeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Rating   string `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
