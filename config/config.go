package config

import (
	"fmt"
	"os"
)

// Config collects every environment setting the service needs. Neo4j and
// LLM credentials are required; the rest fall back to development defaults.
type Config struct {
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string

	LLMAPIKey  string
	LLMModel   string
	LLMBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Neo4jURI:      os.Getenv("NEO4J_URI"),
		Neo4jUsername: os.Getenv("NEO4J_USERNAME"),
		Neo4jPassword: os.Getenv("NEO4J_PASSWORD"),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", "neo4j"),
		LLMAPIKey:     os.Getenv("GROQ_API_KEY"),
		LLMModel:      getEnv("GROQ_MODEL", "llama3-8b-8192"),
		LLMBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
	}

	if cfg.Neo4jURI == "" || cfg.Neo4jUsername == "" || cfg.Neo4jPassword == "" {
		return nil, fmt.Errorf("Neo4j connection details are missing in environment")
	}
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is missing in environment")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
