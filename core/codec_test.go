package core

import (
	"testing"
)

func TestIndexedDocumentMUS_RoundTrip(t *testing.T) {
	doc := IndexedDocument{
		Document: Document{
			ID:      "auth_v2",
			Title:   "Authentication API Reference v2.0",
			Content: "# Authentication API v2.0\n\nNote: API key authentication is deprecated.",
		},
		Metadata: Metadata{
			Service:    "Authentication API",
			Version:    "2.0",
			DocType:    DocTypeReference,
			RateLimits: []string{"100 req/min", "1000 req/min"},
			Deprecated: true,
		},
	}

	buf := make([]byte, IndexedDocumentMUS.Size(doc))
	n := IndexedDocumentMUS.Marshal(doc, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	got, read, err := IndexedDocumentMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if read != n {
		t.Errorf("Unmarshal read %d bytes, want %d", read, n)
	}
	if got.Document != doc.Document {
		t.Errorf("document = %#v, want %#v", got.Document, doc.Document)
	}
	if !got.Metadata.Equal(doc.Metadata) {
		t.Errorf("metadata = %#v, want %#v", got.Metadata, doc.Metadata)
	}

	skipped, err := IndexedDocumentMUS.Skip(buf)
	if err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if skipped != n {
		t.Errorf("Skip consumed %d bytes, want %d", skipped, n)
	}
}

func TestIndexedDocumentMUS_Truncated(t *testing.T) {
	doc := IndexedDocument{Document: Document{ID: "x", Title: "t", Content: "c"}, Metadata: NewMetadata()}

	buf := make([]byte, IndexedDocumentMUS.Size(doc))
	IndexedDocumentMUS.Marshal(doc, buf)

	if _, _, err := IndexedDocumentMUS.Unmarshal(buf[:len(buf)-1]); err == nil {
		t.Error("expected error for truncated input")
	}
}
