// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI collaborator services.
type Config struct {
	// DocumentEndpoint is the base URL of the document analysis service.
	// Example: "https://myresource.cognitiveservices.azure.com"
	DocumentEndpoint string

	// DocumentKey is the API key for the document analysis service.
	DocumentKey string

	// VisionEndpoint is the base URL of the image captioning service.
	VisionEndpoint string

	// VisionKey is the API key for the image captioning service.
	VisionKey string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "https://api.openai.com/v1" or a local OpenAI-compatible server.
	EmbeddingHost string

	// EmbeddingKey is the API token for the embedding service.
	// Leave empty for local services that do not require authentication.
	EmbeddingKey string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// PollInterval is the delay between document analysis status polls.
	// Default: 2s
	PollInterval time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDocumentService sets the document analysis endpoint and key.
func WithDocumentService(endpoint, key string) ConfigOption {
	return func(c *Config) {
		c.DocumentEndpoint = endpoint
		c.DocumentKey = key
	}
}

// WithVisionService sets the image captioning endpoint and key.
func WithVisionService(endpoint, key string) ConfigOption {
	return func(c *Config) {
		c.VisionEndpoint = endpoint
		c.VisionKey = key
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingKey sets the embedding service API token.
func WithEmbeddingKey(key string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingKey = key
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithPollInterval sets the delay between document analysis status polls.
func WithPollInterval(interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.PollInterval = interval
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible embedding service. Document and vision endpoints have
// no defaults and must be provided.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
		PollInterval:   2 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithDocumentService("https://mydi.cognitiveservices.azure.com", key),
//	    ai.WithVisionService("https://mycv.cognitiveservices.azure.com", key),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Service endpoints lose their trailing slash, and the embedding host gains
// the /v1 suffix required by OpenAI-compatible APIs if it is missing.
func (c *Config) Normalize() {
	c.DocumentEndpoint = strings.TrimSuffix(c.DocumentEndpoint, "/")
	c.VisionEndpoint = strings.TrimSuffix(c.VisionEndpoint, "/")

	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}

	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.DocumentEndpoint == "" {
		return errors.New("ai config: DocumentEndpoint is required")
	}
	if c.DocumentKey == "" {
		return errors.New("ai config: DocumentKey is required")
	}
	if c.VisionEndpoint == "" {
		return errors.New("ai config: VisionEndpoint is required")
	}
	if c.VisionKey == "" {
		return errors.New("ai config: VisionKey is required")
	}
	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
