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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/metadex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/xeipuuv/gojsonschema"
)

const defaultRetryDelay = 250 * time.Millisecond

// MetadataExtractor implements ai.MetadataExtractor using OpenAI-compatible chat APIs.
type MetadataExtractor struct {
	client  llms.Model
	schema  *gojsonschema.Schema
	backoff ai.Backoff
	logger  *slog.Logger
}

var _ ai.MetadataExtractor = (*MetadataExtractor)(nil)

// span is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type span struct {
	Class      string            `json:"class"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// response is the wrapper structure for the LLM's JSON response.
type response struct {
	Extractions []span `json:"extractions"`
}

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(extractionResponseSchema))
	if err != nil {
		panic(fmt.Sprintf("compile extraction schema: %v", err))
	}
	return schema
}

// newMetadataExtractor is an internal constructor that returns the concrete type.
func newMetadataExtractor(client llms.Model, config *ai.Config, logger *slog.Logger) *MetadataExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "openai-extractor")
	return &MetadataExtractor{
		client:  client,
		schema:  compiledSchema,
		backoff: ai.NewBackoff(config, defaultRetryDelay, logger),
		logger:  logger,
	}
}

// NewMetadataExtractor creates a new metadata extractor using the provided configuration.
//
// Returns ai.MetadataExtractor interface to enforce abstraction.
func NewMetadataExtractor(config *ai.Config) (ai.MetadataExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newMetadataExtractor(client, config, nil), nil
}

// ExtractMetadata runs req.Passes extraction passes over req.Text and merges the spans.
// Spans repeated across passes (same class, same text ignoring case) are kept once,
// in the order they were first seen.
func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, req ai.Request) ([]ai.Extraction, error) {
	passes := max(req.Passes, 1)
	systemPrompt := buildSystemPrompt(req.TaskDescription, req.Examples)

	merged := make([]ai.Extraction, 0)
	seen := make(map[string]struct{})
	for pass := range passes {
		spans, err := e.extractOnce(ctx, systemPrompt, req)
		if err != nil {
			return nil, fmt.Errorf("extraction pass %d: %w", pass+1, err)
		}
		for _, s := range spans {
			key := s.Class + "\x00" + strings.ToLower(strings.TrimSpace(s.Text))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, ai.Extraction{
				Class:      s.Class,
				Text:       strings.TrimSpace(s.Text),
				Attributes: s.Attributes,
			})
		}
	}

	e.logger.Debug("extracted metadata spans", "passes", passes, "spans", len(merged))
	return merged, nil
}

// extractOnce performs one model call, retrying transport failures and malformed output.
func (e *MetadataExtractor) extractOnce(ctx context.Context, systemPrompt string, req ai.Request) ([]span, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(req.Text),
			},
		},
	}

	callOpts := []llms.CallOption{llms.WithTemperature(0.0), llms.WithJSONMode()}
	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	var result response
	attempts := 0
	err := e.backoff.Do(ctx, func(attempt int) error {
		attempts = attempt
		resp, err := e.client.GenerateContent(ctx, content, callOpts...)
		if err != nil {
			e.logger.Warn("failed to generate content", "attempt", attempt, "err", err)
			if ctx.Err() != nil {
				return ai.Permanent(err)
			}
			return err
		}
		if len(resp.Choices) < 1 {
			return ai.ErrNoChoices
		}

		parsed, err := e.decode(resp.Choices[0].Content)
		if err != nil {
			e.logger.Warn("error parsing extraction response", "attempt", attempt, "err", err)
			return err
		}
		result = parsed
		return nil
	})
	if err != nil {
		e.logger.Error("extraction failed", "attempts", attempts, "err", err)
		return nil, err
	}
	return result.Extractions, nil
}

// decode strips code fences, repairs common defects, validates against the
// response schema and unmarshals the model output.
func (e *MetadataExtractor) decode(raw string) (response, error) {
	var result response

	text := stripCodeFences(raw)
	text = repairJSON(text)

	validation, err := e.schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return result, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}
	if !validation.Valid() {
		var details []string
		for _, desc := range validation.Errors() {
			details = append(details, desc.String())
		}
		return result, fmt.Errorf("%w: %s", ai.ErrMalformedResponse, strings.Join(details, "; "))
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return result, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}
	return result, nil
}
