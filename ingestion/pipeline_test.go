package ingestion

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/ai/mock"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/corpus"
	"github.com/poiesic/metadex/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStrategy wraps the deterministic rules and counts calls per document ID.
type countingStrategy struct {
	calls map[string]int
}

func (s *countingStrategy) Name() string { return "counting" }

func (s *countingStrategy) Extract(_ context.Context, doc core.Document) (core.Metadata, extract.Outcome) {
	s.calls[doc.ID]++
	return extract.Deterministic(doc), extract.OutcomeDeterministic
}

func TestNewPipeline_RequiresStrategy(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.ErrorIs(t, err, ErrStrategyRequired)
}

func TestPipeline_ProcessSample(t *testing.T) {
	p, err := NewPipeline(extract.DeterministicExtractor{})
	require.NoError(t, err)

	docs := corpus.Sample()
	got, err := p.Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, got, len(docs))

	for i, doc := range got {
		assert.Equal(t, docs[i], doc.Document, "input order must be kept")
		assert.True(t, doc.Metadata.Equal(extract.Deterministic(docs[i])))
	}

	assert.Equal(t, "Authentication API", got[0].Metadata.Service)
	assert.Equal(t, "2.0", got[0].Metadata.Version)
	assert.Equal(t, []string{"100 req/min", "1000 req/min"}, got[0].Metadata.RateLimits)
}

func TestPipeline_ReusesIdenticalDocuments(t *testing.T) {
	strategy := &countingStrategy{calls: map[string]int{}}
	p, err := NewPipeline(strategy)
	require.NoError(t, err)

	docs := []core.Document{
		{ID: "a", Title: "Storage Service Guide", Content: "10 requests per minute"},
		{ID: "b", Title: "Storage Service Guide", Content: "10 requests per minute"},
		{ID: "c", Title: "Storage Service Guide", Content: "20 requests per minute"},
	}

	report, err := p.ProcessReport(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 1, "c": 1}, strategy.calls)
	assert.Equal(t, 1, report.Reused)
	assert.Equal(t, 2, report.Outcomes[extract.OutcomeDeterministic])
	assert.Equal(t, "b", report.Documents[1].ID)
	assert.True(t, report.Documents[0].Metadata.Equal(report.Documents[1].Metadata))

	report.Documents[1].Metadata.RateLimits[0] = "changed"
	assert.Equal(t, "10 req/min", report.Documents[0].Metadata.RateLimits[0], "reused metadata must not alias")
}

func TestPipeline_InvalidBatch(t *testing.T) {
	p, err := NewPipeline(extract.DeterministicExtractor{})
	require.NoError(t, err)

	_, err = p.Process(context.Background(), []core.Document{{ID: "x"}, {ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidBatch)
	assert.ErrorIs(t, err, core.ErrDuplicateDocumentID)
}

func TestPipeline_FailuresDoNotAbortBatch(t *testing.T) {
	calls := 0
	m := mock.NewMockMetadataExtractor().WithExtractMetadataFunc(func(_ context.Context, req ai.Request) ([]ai.Extraction, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("model timed out")
		}
		return []ai.Extraction{{Class: ai.LabelServiceName, Text: "Payment API"}}, nil
	})
	strategy, err := extract.NewProbabilisticExtractor(m)
	require.NoError(t, err)

	p, err := NewPipeline(strategy)
	require.NoError(t, err)

	docs := corpus.Sample()
	report, err := p.ProcessReport(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, report.Documents, len(docs))

	assert.Equal(t, 1, report.Outcomes[extract.OutcomeFallback])
	assert.Equal(t, len(docs)-1, report.Outcomes[extract.OutcomeProbabilistic])
	assert.True(t, report.Documents[1].Metadata.Equal(extract.Deterministic(docs[1])))
	assert.Equal(t, "Payment API", report.Documents[0].Metadata.Service)
}

func TestPipeline_Progress(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPipeline(extract.DeterministicExtractor{}, WithProgress(&buf, 2))
	require.NoError(t, err)

	_, err = p.Process(context.Background(), corpus.Sample())
	require.NoError(t, err)

	assert.Equal(t, "Progress: 2/4 (50%)\nProgress: 4/4 (100%)\n", buf.String())
}
