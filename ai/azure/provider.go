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


package azure

import (
	"log/slog"

	"github.com/poiesic/chatdocs/ai"
	"github.com/poiesic/chatdocs/ai/openai"
)

// Provider implements ai.Provider using the Azure document analysis and
// image captioning services together with an OpenAI-compatible embedder.
type Provider struct {
	config    *ai.Config
	analyzer  *Analyzer
	captioner *Captioner
	embedder  ai.Embedder
	logger    *slog.Logger
}

// NewProvider creates a new AI provider backed by Azure Cognitive Services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to Azure-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	analyzer, err := newAnalyzer(config)
	if err != nil {
		return nil, err
	}

	captioner, err := newCaptioner(config)
	if err != nil {
		return nil, err
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		analyzer:  analyzer,
		captioner: captioner,
		embedder:  embedder,
		logger:    slog.Default().With("component", "azure-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// DocumentAnalyzer returns the document analysis service.
func (p *Provider) DocumentAnalyzer() ai.DocumentAnalyzer {
	return p.analyzer
}

// ImageCaptioner returns the image captioning service.
func (p *Provider) ImageCaptioner() ai.ImageCaptioner {
	return p.captioner
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing Azure provider")
	return nil
}
