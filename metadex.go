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

// Package metadex extracts structured metadata from technical documents and
// uses it to narrow keyword search.
//
// An Engine pings the configured model endpoint once, picks a probabilistic
// or deterministic extraction strategy for the whole run, indexes documents
// with their metadata and answers queries with both filtered and unfiltered
// results.
package metadex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/ai/openai"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/extract"
	"github.com/poiesic/metadex/ingestion"
	"github.com/poiesic/metadex/search"
	"github.com/poiesic/metadex/storage"
	"github.com/poiesic/metadex/storage/badger"
)

// Engine wires strategy detection, ingestion and the retrieval index.
type Engine struct {
	repo     storage.DocumentRepository
	index    *search.Index
	pipeline *ingestion.Pipeline
	provider ai.AIProvider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig         *ai.Config
	provider         ai.AIProvider
	deterministic    bool
	logger           *slog.Logger
	progressWriter   io.Writer
	progressInterval int
}

// WithAIConfig sets the model endpoint configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of building an OpenAI-compatible one
// from the AI config. The engine closes it on Close.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithDeterministicOnly skips the capability ping and uses the rule-based
// extractor for every document.
func WithDeterministicOnly() EngineOption {
	return func(o *engineOptions) {
		o.deterministic = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithProgress reports ingestion progress to w every interval documents.
func WithProgress(w io.Writer, interval int) EngineOption {
	return func(o *engineOptions) {
		o.progressWriter = w
		o.progressInterval = interval
	}
}

// NewEngine builds an engine. Unless WithDeterministicOnly is given, the
// provider is pinged once here and the chosen strategy is kept for the
// engine's lifetime.
func NewEngine(ctx context.Context, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	provider := options.provider
	if provider == nil && !options.deterministic {
		if err := options.aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI config: %w", err)
		}
		var err error
		provider, err = openai.NewProvider(options.aiConfig, openai.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("creating AI provider: %w", err)
		}
	}

	var strategy extract.Strategy = extract.DeterministicExtractor{}
	if !options.deterministic {
		strategy = extract.Detect(ctx, provider, options.aiConfig, logger)
	}

	repo, err := badger.NewMemoryRepository(logger)
	if err != nil {
		closeProvider(provider, logger)
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	index, err := search.NewIndex(repo, search.WithLogger(logger))
	if err != nil {
		repo.Close()
		closeProvider(provider, logger)
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(strategy,
		ingestion.WithLogger(logger),
		ingestion.WithProgress(options.progressWriter, options.progressInterval),
	)
	if err != nil {
		repo.Close()
		closeProvider(provider, logger)
		return nil, err
	}

	return &Engine{
		repo:     repo,
		index:    index,
		pipeline: pipeline,
		provider: provider,
		logger:   logger.With("component", "engine"),
	}, nil
}

func closeProvider(provider ai.AIProvider, logger *slog.Logger) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil {
		logger.Error("error closing AI provider", "err", err)
	}
}

// Strategy returns the extraction strategy selected at construction.
func (e *Engine) Strategy() extract.Strategy {
	return e.pipeline.Strategy()
}

// Ingest extracts metadata for docs and replaces the indexed collection with
// the result. It returns the new collection size.
func (e *Engine) Ingest(ctx context.Context, docs []core.Document) (int, error) {
	report, err := e.IngestReport(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(report.Documents), nil
}

// IngestReport is Ingest returning the per-batch report, including every
// indexed document with its metadata.
func (e *Engine) IngestReport(ctx context.Context, docs []core.Document) (*ingestion.Report, error) {
	report, err := e.pipeline.ProcessReport(ctx, docs)
	if err != nil {
		return nil, err
	}
	if _, err := e.index.AddDocuments(ctx, report.Documents); err != nil {
		return nil, err
	}
	return report, nil
}

// QueryResult holds both sides of a query: the filters derived from it and
// the documents found with and without them.
type QueryResult struct {
	Query      string
	Filters    search.Filters
	Filtered   []core.IndexedDocument
	Unfiltered []core.IndexedDocument
}

// Query derives filters from q and searches the collection with and without them.
func (e *Engine) Query(ctx context.Context, q string) (*QueryResult, error) {
	return e.QueryWithMonitor(ctx, q, nil)
}

// QueryWithMonitor is Query with monitor attached to the filtered search.
func (e *Engine) QueryWithMonitor(ctx context.Context, q string, monitor search.SearchMonitor) (*QueryResult, error) {
	filters := search.BuildFilters(q)

	filtered, err := e.index.SearchWithMonitor(ctx, q, filters, monitor)
	if err != nil {
		return nil, err
	}
	unfiltered, err := e.index.Search(ctx, q, nil)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Query:      q,
		Filters:    filters,
		Filtered:   filtered,
		Unfiltered: unfiltered,
	}, nil
}

// Search runs a single search with explicit filters.
func (e *Engine) Search(ctx context.Context, q string, filters search.Filters) ([]core.IndexedDocument, error) {
	return e.index.Search(ctx, q, filters)
}

// Count returns the number of documents in the indexed collection.
func (e *Engine) Count(ctx context.Context) (int, error) {
	return e.index.Count(ctx)
}

// Close releases the provider and the document store.
func (e *Engine) Close() error {
	var errs []error
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing document store", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
