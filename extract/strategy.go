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

package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/core"
)

// Strategy names.
const (
	NameDeterministic = "deterministic"
	NameProbabilistic = "probabilistic"
)

// Outcome records which path produced a document's metadata.
type Outcome string

const (
	// OutcomeDeterministic means the rule-based strategy ran.
	OutcomeDeterministic Outcome = "deterministic"
	// OutcomeProbabilistic means the model answered and its spans were normalized.
	OutcomeProbabilistic Outcome = "probabilistic"
	// OutcomeFallback means the model failed for this document and the rules were used.
	OutcomeFallback Outcome = "fallback"
)

// Strategy produces complete metadata for one document. Extract never fails;
// the Outcome reports how the record was produced.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, doc core.Document) (core.Metadata, Outcome)
}

// ErrExtractorRequired is returned when a probabilistic strategy is built without an extractor.
var ErrExtractorRequired = errors.New("metadata extractor is required")

// DefaultPingTimeout bounds the start-up capability ping.
const DefaultPingTimeout = 10 * time.Second

// Detect pings provider once and returns the strategy to hold for the run.
// A nil provider or a failed ping selects DeterministicExtractor and logs a
// single warning; the error is not returned.
func Detect(ctx context.Context, provider ai.AIProvider, config *ai.Config, logger *slog.Logger) Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "extract")

	if provider == nil {
		logger.Warn("extraction capability not configured, using deterministic extraction")
		return DeterministicExtractor{}
	}
	if config == nil {
		config = ai.DefaultConfig()
	}

	pingTimeout := DefaultPingTimeout
	if config.Timeout > 0 {
		pingTimeout = min(pingTimeout, config.Timeout)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := provider.Ping(pingCtx); err != nil {
		logger.Warn("extraction capability unavailable, using deterministic extraction", "err", err)
		return DeterministicExtractor{}
	}

	strategy, err := NewProbabilisticExtractor(provider.MetadataExtractor(),
		WithModel(config.Model),
		WithPasses(config.ExtractionPasses),
		WithTimeout(config.Timeout),
		WithLogger(logger),
	)
	if err != nil {
		logger.Warn("cannot build probabilistic extractor, using deterministic extraction", "err", err)
		return DeterministicExtractor{}
	}
	logger.Info("extraction capability available", "model", config.Model, "passes", config.ExtractionPasses)
	return strategy
}
