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

package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/metadex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrClientRequired is returned when WithClient is given a nil model.
var ErrClientRequired = errors.New("llm client is required")

// Provider implements ai.AIProvider using an OpenAI-compatible service.
type Provider struct {
	config    *ai.Config
	client    llms.Model
	extractor *MetadataExtractor
	logger    *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider) error

// WithLogger sets the provider's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// WithClient replaces the langchaingo model the provider talks to.
func WithClient(client llms.Model) Option {
	return func(p *Provider) error {
		if client == nil {
			return ErrClientRequired
		}
		p.client = client
		return nil
	}
}

// NewProvider creates a new AI provider backed by an OpenAI-compatible service.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config, opts ...Option) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "openai-provider")

	if p.client == nil {
		client, err := newClient(config)
		if err != nil {
			return nil, err
		}
		p.client = client
	}

	p.extractor = newMetadataExtractor(p.client, config, p.logger)
	return p, nil
}

// newClient builds the langchaingo OpenAI client for config.
func newClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
}

// MetadataExtractor returns the metadata extraction service.
func (p *Provider) MetadataExtractor() ai.MetadataExtractor {
	return p.extractor
}

// Ping sends a one-token request to confirm the service answers.
func (p *Provider) Ping(ctx context.Context) error {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "ping"),
	}
	_, err := p.client.GenerateContent(ctx, content, llms.WithMaxTokens(1))
	if err != nil {
		p.logger.Debug("ping failed", "host", p.config.Host, "err", err)
		return err
	}
	return nil
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
