package azsearch

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds configuration for the Azure Cognitive Search vector store.
type Config struct {
	// Name is the search service name, used to derive the service URL
	// https://{name}.search.windows.net when Endpoint is not set.
	Name string

	// IndexName is the search index holding the chunk records.
	IndexName string

	// APIKey is the admin or query key for the service.
	APIKey string

	// APIVersion selects the REST API version.
	// Default: "2023-07-01-Preview" (first version with vector queries).
	APIVersion string

	// VectorField is the index field holding the embedding vector.
	// Default: "embedding".
	VectorField string

	// Endpoint overrides the URL derived from Name.
	// Used for testing and sovereign clouds.
	Endpoint string
}

// Normalize fills defaults and puts the configuration in canonical form.
func (c *Config) Normalize() {
	if c.APIVersion == "" {
		c.APIVersion = "2023-07-01-Preview"
	}
	if c.VectorField == "" {
		c.VectorField = "embedding"
	}
	if c.Endpoint == "" && c.Name != "" {
		c.Endpoint = fmt.Sprintf("https://%s.search.windows.net", c.Name)
	}
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Endpoint == "" {
		return errors.New("azsearch config: Name or Endpoint is required")
	}
	if c.IndexName == "" {
		return errors.New("azsearch config: IndexName is required")
	}
	if c.APIKey == "" {
		return errors.New("azsearch config: APIKey is required")
	}
	return nil
}
