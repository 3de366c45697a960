package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/storage/azsearch"
)

// Config holds the service configuration, loaded from the environment.
// A .env file in the working directory is read first when present.
type Config struct {
	ServerAddr   string `env:"SERVER_ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./chatdocs-db"`

	DocumentIntelligenceEndpoint string `env:"AZURE_DOCUMENT_INTELLIGENCE_ENDPOINT"`
	DocumentIntelligenceKey      string `env:"AZURE_DOCUMENT_INTELLIGENCE_KEY"`
	VisionEndpoint               string `env:"AZURE_VISION_ENDPOINT"`
	VisionKey                    string `env:"AZURE_VISION_KEY"`

	EmbeddingHost  string `env:"EMBEDDING_HOST" envDefault:"http://localhost:11434/v1"`
	EmbeddingKey   string `env:"EMBEDDING_KEY"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"embeddinggemma"`

	SearchName      string `env:"AZURE_SEARCH_NAME"`
	SearchIndexName string `env:"AZURE_SEARCH_INDEX_NAME"`
	SearchAPIKey    string `env:"AZURE_SEARCH_API_KEY"`
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// AIConfig builds the AI service configuration.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithDocumentService(c.DocumentIntelligenceEndpoint, c.DocumentIntelligenceKey),
		ai.WithVisionService(c.VisionEndpoint, c.VisionKey),
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithEmbeddingKey(c.EmbeddingKey),
		ai.WithEmbeddingModel(c.EmbeddingModel),
	)
}

// SearchConfig builds the search index configuration.
func (c *Config) SearchConfig() *azsearch.Config {
	return &azsearch.Config{
		Name:      c.SearchName,
		IndexName: c.SearchIndexName,
		APIKey:    c.SearchAPIKey,
	}
}
