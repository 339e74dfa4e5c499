package extract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestDetect_Available(t *testing.T) {
	provider := mock.NewMockProviderWithExtractor(mock.NewMockMetadataExtractor())
	cfg := ai.NewConfig(ai.WithModel("gemini-2.5-flash"), ai.WithExtractionPasses(2))

	strategy := Detect(context.Background(), provider, cfg, nil)
	require.IsType(t, &ProbabilisticExtractor{}, strategy)
	assert.Equal(t, NameProbabilistic, strategy.Name())
	assert.Equal(t, 1, provider.PingCount())

	p := strategy.(*ProbabilisticExtractor)
	assert.Equal(t, "gemini-2.5-flash", p.model)
	assert.Equal(t, 2, p.passes)
}

func TestDetect_Unavailable(t *testing.T) {
	var buf bytes.Buffer
	provider := mock.NewMockProviderWithExtractor(mock.NewMockMetadataExtractor())
	provider.PingFunc = func(context.Context) error { return errors.New("connection refused") }

	strategy := Detect(context.Background(), provider, ai.NewConfig(), bufferLogger(&buf))
	assert.Equal(t, DeterministicExtractor{}, strategy)
	assert.Equal(t, 1, provider.PingCount())
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"), "exactly one notice: %s", buf.String())
	assert.Zero(t, provider.GetMockExtractor().CallCount())
}

func TestDetect_NilProvider(t *testing.T) {
	var buf bytes.Buffer
	strategy := Detect(context.Background(), nil, nil, bufferLogger(&buf))
	assert.Equal(t, NameDeterministic, strategy.Name())
	assert.Contains(t, buf.String(), "deterministic extraction")
}

func TestDetect_InvalidPasses(t *testing.T) {
	provider := mock.NewMockProviderWithExtractor(mock.NewMockMetadataExtractor())
	cfg := ai.NewConfig(ai.WithExtractionPasses(0))

	strategy := Detect(context.Background(), provider, cfg, nil)
	assert.Equal(t, NameDeterministic, strategy.Name())
}
