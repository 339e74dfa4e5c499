package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/extract"
	"github.com/poiesic/metadex/metrics"
)

// Report summarizes one processed batch.
type Report struct {
	Documents []core.IndexedDocument
	Outcomes  map[extract.Outcome]int
	Reused    int // documents that took metadata from an identical earlier document
	Elapsed   time.Duration
}

// Pipeline runs an extraction strategy over document batches.
type Pipeline struct {
	strategy         extract.Strategy
	progressWriter   io.Writer
	progressInterval int
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress reports progress to w every interval documents.
// A nil writer disables progress output, which is the default.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		p.progressInterval = interval
		return nil
	}
}

// NewPipeline creates a pipeline that extracts metadata with strategy.
func NewPipeline(strategy extract.Strategy, opts ...Option) (*Pipeline, error) {
	if strategy == nil {
		return nil, ErrStrategyRequired
	}

	p := &Pipeline{
		strategy: strategy,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "ingestion-pipeline", "strategy", strategy.Name())

	return p, nil
}

// Strategy returns the strategy the pipeline runs.
func (p *Pipeline) Strategy() extract.Strategy {
	return p.strategy
}

// Process extracts metadata for every document in docs and returns the
// indexed documents in input order.
func (p *Pipeline) Process(ctx context.Context, docs []core.Document) ([]core.IndexedDocument, error) {
	report, err := p.ProcessReport(ctx, docs)
	if err != nil {
		return nil, err
	}
	return report.Documents, nil
}

// ProcessReport is Process with per-batch statistics.
func (p *Pipeline) ProcessReport(ctx context.Context, docs []core.Document) (*Report, error) {
	if err := core.ValidateDocuments(docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBatch, err)
	}

	var progress *ProgressTracker
	if p.progressWriter != nil {
		progress = NewProgressTracker(p.progressWriter, len(docs), p.progressInterval)
		progress.Start()
	}

	start := time.Now()
	report := &Report{
		Documents: make([]core.IndexedDocument, 0, len(docs)),
		Outcomes:  make(map[extract.Outcome]int),
	}
	seen := make(map[core.ID]core.Metadata, len(docs))

	for _, doc := range docs {
		fingerprint := core.FingerprintDocument(doc)

		metadata, ok := seen[fingerprint]
		if ok {
			metadata = metadata.Clone()
			report.Reused++
			p.logger.Debug("reusing metadata for identical document", "id", doc.ID)
		} else {
			began := time.Now()
			var outcome extract.Outcome
			metadata, outcome = p.strategy.Extract(ctx, doc)
			metrics.ObserveExtraction(p.strategy.Name(), string(outcome), time.Since(began))
			report.Outcomes[outcome]++
			seen[fingerprint] = metadata.Clone()
			p.logger.Debug("extracted metadata", "id", doc.ID, "outcome", outcome,
				"service", metadata.Service, "version", metadata.Version, "doc_type", metadata.DocType)
		}

		report.Documents = append(report.Documents, core.IndexedDocument{Document: doc, Metadata: metadata})
		if progress != nil {
			progress.Increment(1)
		}
	}

	if progress != nil {
		progress.Finish()
	}
	report.Elapsed = time.Since(start)

	p.logger.Info("batch processed",
		"documents", len(report.Documents),
		"reused", report.Reused,
		"fallbacks", report.Outcomes[extract.OutcomeFallback],
		"elapsed", report.Elapsed)

	return report, nil
}
