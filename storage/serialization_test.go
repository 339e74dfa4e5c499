package storage

import (
	"testing"

	"github.com/poiesic/metadex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalIndexedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *core.IndexedDocument
	}{
		{
			name: "full record",
			doc: &core.IndexedDocument{
				Document: core.Document{ID: "auth_v1", Title: "Authentication API Reference v1.0 (Legacy)", Content: "X-API-Key"},
				Metadata: core.Metadata{
					Service:    "Authentication API",
					Version:    "1.0",
					DocType:    core.DocTypeReference,
					RateLimits: []string{"60 req/min"},
					Deprecated: true,
				},
			},
		},
		{
			name: "default metadata",
			doc: &core.IndexedDocument{
				Document: core.Document{ID: "blank"},
				Metadata: core.NewMetadata(),
			},
		},
		{
			name: "unicode content",
			doc: &core.IndexedDocument{
				Document: core.Document{ID: "ü", Title: "Leitfaden", Content: "Größe: 5 GB"},
				Metadata: core.Metadata{Service: "Speicher Service", Version: "3.1.4", DocType: core.DocTypeGuide},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalIndexedDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalIndexedDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc.Document, decoded.Document)
			assert.True(t, tt.doc.Metadata.Equal(decoded.Metadata))
			assert.NotNil(t, decoded.Metadata.RateLimits)
		})
	}
}

func TestUnmarshalIndexedDocument_Invalid(t *testing.T) {
	_, err := UnmarshalIndexedDocument([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
