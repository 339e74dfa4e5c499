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
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/core"
)

// errNoSpans marks a response that parsed but carried nothing usable.
var errNoSpans = errors.New("extraction returned no spans")

// ProbabilisticExtractor is the model-backed Strategy. Any failure for a
// document falls back to Deterministic for that document only.
type ProbabilisticExtractor struct {
	extractor ai.MetadataExtractor
	task      string
	examples  []ai.Example
	model     string
	passes    int
	timeout   time.Duration
	logger    *slog.Logger
}

var _ Strategy = (*ProbabilisticExtractor)(nil)

// Option configures a ProbabilisticExtractor.
type Option func(*ProbabilisticExtractor) error

// WithModel sets the model identifier sent with each request.
func WithModel(model string) Option {
	return func(p *ProbabilisticExtractor) error {
		p.model = model
		return nil
	}
}

// WithPasses sets the number of extraction passes per document.
func WithPasses(passes int) Option {
	return func(p *ProbabilisticExtractor) error {
		if passes < 1 {
			return fmt.Errorf("passes must be at least 1, got %d", passes)
		}
		p.passes = passes
		return nil
	}
}

// WithTimeout sets the per-document timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(p *ProbabilisticExtractor) error {
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", timeout)
		}
		p.timeout = timeout
		return nil
	}
}

// WithExamples replaces the worked examples sent with each request.
func WithExamples(examples []ai.Example) Option {
	return func(p *ProbabilisticExtractor) error {
		p.examples = examples
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *ProbabilisticExtractor) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewProbabilisticExtractor creates a strategy around extractor.
func NewProbabilisticExtractor(extractor ai.MetadataExtractor, opts ...Option) (*ProbabilisticExtractor, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	defaults := ai.DefaultConfig()
	p := &ProbabilisticExtractor{
		extractor: extractor,
		task:      ai.TaskDescription,
		examples:  ai.WorkedExamples,
		model:     defaults.Model,
		passes:    defaults.ExtractionPasses,
		timeout:   defaults.Timeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Name returns the strategy name used in logs and metrics.
func (p *ProbabilisticExtractor) Name() string {
	return NameProbabilistic
}

// Extract asks the model for spans and normalizes them. Transport errors,
// timeouts, malformed output and empty results all yield Deterministic(doc)
// with OutcomeFallback.
func (p *ProbabilisticExtractor) Extract(ctx context.Context, doc core.Document) (core.Metadata, Outcome) {
	spans, err := p.request(ctx, doc)
	if err != nil {
		p.logger.Warn("probabilistic extraction failed, using deterministic fallback",
			"document", doc.ID, "err", err)
		return Deterministic(doc), OutcomeFallback
	}
	return Normalize(RawFromSpans(spans), doc), OutcomeProbabilistic
}

func (p *ProbabilisticExtractor) request(ctx context.Context, doc core.Document) ([]ai.Extraction, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	spans, err := p.extractor.ExtractMetadata(ctx, ai.Request{
		Text:            requestText(doc),
		TaskDescription: p.task,
		Examples:        p.examples,
		Model:           p.model,
		Passes:          p.passes,
	})
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, errNoSpans
	}
	return spans, nil
}

// requestText puts the title in front of the content; the task asks for the
// service name as written in the title.
func requestText(doc core.Document) string {
	if doc.Title == "" {
		return doc.Content
	}
	return "Title: " + doc.Title + "\n\n" + doc.Content
}
