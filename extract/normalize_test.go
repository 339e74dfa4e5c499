package extract

import (
	"testing"

	"github.com/poiesic/metadex/ai"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/corpus"
	"github.com/stretchr/testify/assert"
)

var authDoc = core.Document{
	ID:      "auth_v2",
	Title:   "Authentication API Reference v2.0",
	Content: "Standard tier: 100 requests per minute",
}

func TestRawFromSpans(t *testing.T) {
	spans := []ai.Extraction{
		{Class: ai.LabelServiceName, Text: " Payment API "},
		{Class: ai.LabelVersionNumber, Text: "3.0"},
		{Class: ai.LabelDocumentCategory, Text: "Reference"},
		{Class: ai.LabelRateLimits, Text: "500 requests per minute"},
		{Class: ai.LabelRateLimits, Text: "50 requests per second"},
		{Class: ai.LabelDeprecatedItems, Text: "v2 endpoints"},
		{Class: "colour", Text: "blue"},
	}

	raw := RawFromSpans(spans)
	assert.Equal(t, Raw{
		Service:    "Payment API",
		Version:    "3.0",
		Category:   "Reference",
		RateLimits: []string{"500 requests per minute", "50 requests per second"},
		Deprecated: true,
	}, raw)
}

func TestRawFromSpans_Empty(t *testing.T) {
	assert.Equal(t, Raw{}, RawFromSpans(nil))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		doc  core.Document
		want core.Metadata
	}{
		{
			name: "fully supplied values win",
			raw: Raw{
				Service:    "Identity API",
				Version:    "9.9",
				Category:   "guide",
				RateLimits: []string{"5 per second"},
				Deprecated: true,
			},
			doc: authDoc,
			want: core.Metadata{
				Service:    "Identity API",
				Version:    "9.9",
				DocType:    core.DocTypeGuide,
				RateLimits: []string{"5 per second"},
				Deprecated: true,
			},
		},
		{
			name: "missing version filled from rules",
			raw:  Raw{Service: "Identity API", Category: "reference"},
			doc:  authDoc,
			want: core.Metadata{
				Service:    "Identity API",
				Version:    "2.0",
				DocType:    core.DocTypeReference,
				RateLimits: []string{},
			},
		},
		{
			name: "missing service filled from rules",
			raw:  Raw{Version: "2.1", Category: "reference"},
			doc:  authDoc,
			want: core.Metadata{
				Service:    "Authentication API",
				Version:    "2.1",
				DocType:    core.DocTypeReference,
				RateLimits: []string{},
			},
		},
		{
			name: "missing category repaired alongside version gap",
			raw:  Raw{Service: "Troubleshooting"},
			doc:  core.Document{ID: "t", Title: "Troubleshooting Guide: Authentication Errors"},
			want: core.Metadata{
				Service:    "Troubleshooting",
				Version:    core.Unknown,
				DocType:    core.DocTypeTroubleshooting,
				RateLimits: []string{},
			},
		},
		{
			name: "missing category kept as reference when service and version supplied",
			raw:  Raw{Service: "Storage Service", Version: "1.0"},
			doc:  core.Document{ID: "s", Title: "Storage Service Guide"},
			want: core.Metadata{
				Service:    "Storage Service",
				Version:    "1.0",
				DocType:    core.DocTypeReference,
				RateLimits: []string{},
			},
		},
		{
			name: "explicit reference kept during gap fill",
			raw:  Raw{Version: "1.0", Category: "reference"},
			doc:  core.Document{ID: "s", Title: "Storage Service Guide"},
			want: core.Metadata{
				Service:    "Storage Service",
				Version:    "1.0",
				DocType:    core.DocTypeReference,
				RateLimits: []string{},
			},
		},
		{
			name: "explicit reference is kept",
			raw:  Raw{Service: "Storage Service", Version: "1.0", Category: "reference"},
			doc:  core.Document{ID: "s", Title: "Storage Service Guide"},
			want: core.Metadata{
				Service:    "Storage Service",
				Version:    "1.0",
				DocType:    core.DocTypeReference,
				RateLimits: []string{},
			},
		},
		{
			name: "category case folded",
			raw:  Raw{Service: "A API", Version: "1", Category: "  Troubleshooting "},
			doc:  authDoc,
			want: core.Metadata{
				Service:    "A API",
				Version:    "1",
				DocType:    core.DocTypeTroubleshooting,
				RateLimits: []string{},
			},
		},
		{
			name: "unknown category passes through",
			raw:  Raw{Service: "A API", Version: "1", Category: "Tutorial"},
			doc:  authDoc,
			want: core.Metadata{
				Service:    "A API",
				Version:    "1",
				DocType:    core.DocType("tutorial"),
				RateLimits: []string{},
			},
		},
		{
			name: "nothing supplied gives rule result without rate limits",
			raw:  Raw{},
			doc:  core.Document{ID: "x", Title: "Billing Service Guide v4"},
			want: core.Metadata{
				Service:    "Billing Service",
				Version:    "4",
				DocType:    core.DocTypeGuide,
				RateLimits: []string{},
			},
		},
		{
			name: "no signal anywhere keeps defaults",
			raw:  Raw{},
			doc:  core.Document{ID: "x"},
			want: core.NewMetadata(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.doc)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_DoesNotAliasRaw(t *testing.T) {
	raw := Raw{RateLimits: []string{"1 req/min"}}
	m := Normalize(raw, authDoc)
	m.RateLimits[0] = "changed"
	assert.Equal(t, "1 req/min", raw.RateLimits[0])
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Raw{
		{},
		{Service: "Identity API"},
		{Version: "7", Category: "GUIDE", RateLimits: []string{"1 req/min"}},
		{Service: "X API", Version: "1", Category: "faq", Deprecated: true},
	}

	for _, doc := range corpus.Sample() {
		for _, raw := range inputs {
			once := Normalize(raw, doc)
			twice := Normalize(RawFrom(once), doc)
			assert.Equal(t, once, twice, "doc %s raw %+v", doc.ID, raw)
		}

		resolved := Deterministic(doc)
		assert.Equal(t, resolved, Normalize(RawFrom(resolved), doc), "doc %s", doc.ID)
	}
}
