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
	"slices"
	"strings"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/core"
)

// Raw is a possibly partial extraction result. Empty strings mean the field
// was not supplied.
type Raw struct {
	Service    string
	Version    string
	Category   string
	RateLimits []string
	Deprecated bool
}

// RawFromSpans folds labeled spans into a Raw record. The last service,
// version and category span wins; rate limit spans accumulate in order and any
// deprecated span sets the flag. Unknown labels are ignored.
func RawFromSpans(spans []ai.Extraction) Raw {
	var raw Raw
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		switch s.Class {
		case ai.LabelServiceName:
			if text != "" {
				raw.Service = text
			}
		case ai.LabelVersionNumber:
			if text != "" {
				raw.Version = text
			}
		case ai.LabelDocumentCategory:
			if text != "" {
				raw.Category = text
			}
		case ai.LabelRateLimits:
			if text != "" {
				raw.RateLimits = append(raw.RateLimits, text)
			}
		case ai.LabelDeprecatedItems:
			raw.Deprecated = true
		}
	}
	return raw
}

// RawFrom turns a resolved record back into a fully supplied Raw.
func RawFrom(m core.Metadata) Raw {
	return Raw{
		Service:    m.Service,
		Version:    m.Version,
		Category:   string(m.DocType),
		RateLimits: slices.Clone(m.RateLimits),
		Deprecated: m.Deprecated,
	}
}

// Normalize reconciles raw with defaults and the deterministic rules for doc.
//
// Supplied values always win. Service and version left unknown are filled
// from Deterministic(doc). While filling that gap, a missing category is also
// taken from the rules; an explicit "reference" is kept, and a record with
// service and version both supplied keeps the default category. Category
// text is case-folded; values outside the closed set pass through unchanged.
func Normalize(raw Raw, doc core.Document) core.Metadata {
	m := core.NewMetadata()

	if raw.Service != "" {
		m.Service = raw.Service
	}
	if raw.Version != "" {
		m.Version = raw.Version
	}
	category := strings.ToLower(strings.TrimSpace(raw.Category))
	if category != "" {
		m.DocType = core.DocType(category)
	}
	if len(raw.RateLimits) > 0 {
		m.RateLimits = slices.Clone(raw.RateLimits)
	}
	m.Deprecated = raw.Deprecated

	var fallback *core.Metadata
	rules := func() core.Metadata {
		if fallback == nil {
			d := Deterministic(doc)
			fallback = &d
		}
		return *fallback
	}

	if m.Service == core.Unknown || m.Version == core.Unknown {
		if m.Service == core.Unknown {
			m.Service = rules().Service
		}
		if m.Version == core.Unknown {
			m.Version = rules().Version
		}
		// Category is only repaired alongside a service/version gap, and
		// never over an explicit value.
		if category == "" {
			m.DocType = rules().DocType
		}
	}

	return m
}
