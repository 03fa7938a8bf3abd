package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"github.com/tmc/langchaingo/llms/openai"

	"graphqa-service/chain"
	"graphqa-service/config"
	"graphqa-service/graphstore"
	"graphqa-service/handlers"
	"graphqa-service/logging"
	"graphqa-service/services"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", os.Getenv("CORS_ORIGIN"))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}

	logging.InitLogger()

	// Startup failures leave the service nil; endpoints answer 503 until
	// the process is restarted with working configuration.
	service := initService()

	handler := handlers.NewGraphQAHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/", handler.HealthCheck).Methods("GET")
	router.HandleFunc("/status", handler.GetStatus).Methods("GET")
	router.HandleFunc("/ask", handler.AskQuestion).Methods("POST")
	router.HandleFunc("/feedback", handler.SubmitFeedback).Methods("POST")

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8000"
	}

	srv := &http.Server{
		Handler:      enableCORS(router),
		Addr:         port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	logging.Logger.Infof("Graph Q&A service running on port %s", port)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Server stopped: %v", err)
	}
}

func initService() *services.GraphQAService {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Errorf("CRITICAL: Failed to load configuration: %v", err)
		return nil
	}

	graph, err := graphstore.New(ctx, graphstore.Neo4jConfig{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUsername,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		logging.Logger.Errorf("CRITICAL: Failed to connect to Neo4j: %v", err)
		return nil
	}

	if err := graph.RefreshSchema(ctx); err != nil {
		logging.Logger.Errorf("CRITICAL: Failed to refresh Neo4j schema: %v", err)
		return nil
	}

	llm, err := openai.New(
		openai.WithToken(cfg.LLMAPIKey),
		openai.WithModel(cfg.LLMModel),
		openai.WithBaseURL(cfg.LLMBaseURL),
	)
	if err != nil {
		logging.Logger.Errorf("CRITICAL: Failed to initialize LLM client: %v", err)
		return nil
	}
	logging.Logger.Infof("LLM client initialized: %s", cfg.LLMModel)

	qaChain := chain.New(llm, graph)

	llmBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "LLMChainCB",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	logging.Logger.Info("GraphQAService initialized successfully")
	return services.NewGraphQAService(qaChain, graph, llmBreaker, cfg.LLMModel)
}
