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
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/metadex/core"
)

var (
	serviceRe   = regexp.MustCompile(`([\w\s]+(?:API|Service))`)
	versionRe   = regexp.MustCompile(`v?([\d.]+)`)
	rateLimitRe = regexp.MustCompile(`(\d+)\s*(?:requests?|req)[/\s]*(?:per\s*)?min`)
)

// Deterministic derives metadata from the document using pattern rules only.
// It never fails and always returns a complete record.
func Deterministic(doc core.Document) core.Metadata {
	m := core.NewMetadata()

	if match := serviceRe.FindStringSubmatch(doc.Title); match != nil {
		m.Service = strings.TrimSpace(match[1])
	}
	if match := versionRe.FindStringSubmatch(doc.Title); match != nil {
		m.Version = match[1]
	}
	m.DocType = docTypeFromTitle(doc.Title)

	content := strings.ToLower(doc.Content)
	for _, match := range rateLimitRe.FindAllStringSubmatch(content, -1) {
		m.RateLimits = append(m.RateLimits, fmt.Sprintf("%s req/min", match[1]))
	}
	m.Deprecated = strings.Contains(content, "deprecated")

	return m
}

// docTypeFromTitle classifies by title keyword; troubleshooting wins over guide.
func docTypeFromTitle(title string) core.DocType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "troubleshooting"):
		return core.DocTypeTroubleshooting
	case strings.Contains(lower, "guide"):
		return core.DocTypeGuide
	default:
		return core.DocTypeReference
	}
}

// DeterministicExtractor is the rule-based Strategy.
type DeterministicExtractor struct{}

var _ Strategy = DeterministicExtractor{}

// Name returns the strategy name used in logs and metrics.
func (DeterministicExtractor) Name() string {
	return NameDeterministic
}

// Extract applies Deterministic to doc.
func (DeterministicExtractor) Extract(_ context.Context, doc core.Document) (core.Metadata, Outcome) {
	return Deterministic(doc), OutcomeDeterministic
}
