package handlers

import (
	"encoding/json"
	"net/http"

	"graphqa-service/logging"
	"graphqa-service/models"
	"graphqa-service/services"
)

// GraphQAHandler exposes the question-answering service over HTTP. Service
// stays nil when startup initialization failed; every endpoint that needs
// it then answers 503.
type GraphQAHandler struct {
	Service *services.GraphQAService
}

func NewGraphQAHandler(service *services.GraphQAService) *GraphQAHandler {
	return &GraphQAHandler{Service: service}
}

func (h *GraphQAHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Graph Q&A API is running"})
}

func (h *GraphQAHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if !h.serviceAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, h.Service.GetStatus())
}

func (h *GraphQAHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.serviceAvailable(w) {
		return
	}

	var request models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logging.Logger.Errorf("Failed to decode ask request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if request.Question == "" {
		logging.Logger.Warn("Ask request with empty question")
		http.Error(w, "Question cannot be empty.", http.StatusBadRequest)
		return
	}

	// Chain failures ride in the response's error field; the request
	// itself still completes.
	result := h.Service.Query(r.Context(), request.Question)
	if result.Error != "" {
		logging.Logger.Errorf("Error processed by service: %s", result.Error)
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *GraphQAHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var feedback models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		logging.Logger.Errorf("Failed to decode feedback body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if feedback.Rating != "positive" && feedback.Rating != "negative" {
		logging.Logger.Warnf("Feedback with invalid rating: %s", feedback.Rating)
		http.Error(w, "Rating must be 'positive' or 'negative'", http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Feedback received - Rating: %s, Question: %s", feedback.Rating, truncate(feedback.Question, 50))
	if feedback.Comment != "" {
		logging.Logger.Infof("Feedback comment: %s", feedback.Comment)
	}

	writeJSON(w, http.StatusOK, models.FeedbackResponse{
		Status:  "success",
		Message: "Thank you for your feedback!",
	})
}

func (h *GraphQAHandler) serviceAvailable(w http.ResponseWriter) bool {
	if h.Service == nil {
		logging.Logger.Error("Endpoint called but service is not available")
		http.Error(w, "Service Unavailable: The QA chain is not initialized. Check server logs.", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Logger.Errorf("Failed to encode response: %v", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
