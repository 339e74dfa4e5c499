package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/metrics"
	"github.com/poiesic/metadex/storage"
)

// Search modes, used as metric labels.
const (
	ModeFiltered   = "filtered"
	ModeUnfiltered = "unfiltered"
)

// Index is the retrieval index over the current document collection.
type Index struct {
	repo   storage.DocumentRepository
	logger *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// NewIndex creates an index backed by repo.
func NewIndex(repo storage.DocumentRepository, opts ...Option) (*Index, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	idx := &Index{
		repo:   repo,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}
	idx.logger = idx.logger.With("component", "search-index")

	return idx, nil
}

// AddDocuments replaces the whole collection with docs and returns the new
// document count.
func (idx *Index) AddDocuments(ctx context.Context, docs []core.IndexedDocument) (int, error) {
	if err := idx.repo.ReplaceDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("replacing collection: %w", err)
	}

	count, err := idx.repo.CountDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}

	idx.logger.Debug("collection replaced", "documents", count)
	return count, nil
}

// Count returns the number of documents in the collection.
func (idx *Index) Count(ctx context.Context) (int, error) {
	return idx.repo.CountDocuments(ctx)
}

// Search returns the documents matching query, narrowed by filters.
// A nil or empty filter set runs an unfiltered search.
func (idx *Index) Search(ctx context.Context, query string, filters Filters) ([]core.IndexedDocument, error) {
	return idx.SearchWithMonitor(ctx, query, filters, nil)
}

// SearchWithMonitor is Search with a monitor that sees every per-document decision.
func (idx *Index) SearchWithMonitor(ctx context.Context, query string, filters Filters, monitor SearchMonitor) ([]core.IndexedDocument, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query, filters)

	mode := ModeUnfiltered
	if !filters.Empty() {
		mode = ModeFiltered
	}

	tokens := queryTokens(query)
	results := []core.IndexedDocument{}

	err := idx.repo.ForEachDocument(ctx, func(doc core.IndexedDocument) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reason := rejectReason(&doc, tokens, filters); reason != "" {
			monitor.Rejected(&doc, reason)
			return nil
		}
		monitor.Matched(&doc)
		results = append(results, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning collection: %w", err)
	}

	metrics.ObserveSearch(mode, len(results))
	idx.logger.Debug("search complete", "query", query, "mode", mode, "filters", filters.String(), "results", len(results))

	monitor.Finish(results)
	return results, nil
}

// rejectReason returns the first failed check for doc, or "" when it passes.
// Metadata filters are checked before the content test.
func rejectReason(doc *core.IndexedDocument, tokens []string, filters Filters) string {
	if service, ok := filters[FilterService]; ok {
		if matched, _ := MatchService(service, doc.Metadata.Service); !matched {
			return ReasonService
		}
	}
	if version, ok := filters[FilterVersion]; ok && version != doc.Metadata.Version {
		return ReasonVersion
	}
	if docType, ok := filters[FilterDocType]; ok && docType != string(doc.Metadata.DocType) {
		return ReasonDocType
	}
	if !ContentMatches(doc.Content, tokens) {
		return ReasonContent
	}
	return ""
}

// ContentMatches reports whether any of the lowercased query tokens occurs as
// a substring of content, ignoring case.
func ContentMatches(content string, tokens []string) bool {
	lower := strings.ToLower(content)
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func queryTokens(query string) []string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
