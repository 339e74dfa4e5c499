package core

import (
	"encoding/binary"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// Unknown is the value carried by Service and Version when no signal was found.
const Unknown = "unknown"

// ID is a content-derived identifier used to recognise identical documents.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocType is the category of a technical document.
type DocType string

const (
	// DocTypeReference is API reference material. It is also the default.
	DocTypeReference DocType = "reference"
	// DocTypeGuide is a how-to or getting-started guide.
	DocTypeGuide DocType = "guide"
	// DocTypeTroubleshooting is problem/solution material.
	DocTypeTroubleshooting DocType = "troubleshooting"
)

// DocTypes lists the closed set of known categories.
var DocTypes = []DocType{DocTypeReference, DocTypeGuide, DocTypeTroubleshooting}

// Valid reports whether t belongs to the closed set of categories.
func (t DocType) Valid() bool {
	return slices.Contains(DocTypes, t)
}

// Document is a raw technical document as supplied by a loader.
// Documents are never modified after loading.
type Document struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"` // markdown-like free text
}

// FingerprintDocument returns a content ID covering the title and content of doc.
// The document ID is not part of the fingerprint.
func FingerprintDocument(doc Document) ID {
	return IDFromContent(doc.Title + "\x00" + doc.Content)
}

// Metadata is the normalized structured summary attached to every document.
type Metadata struct {
	Service    string   `json:"service"`     // e.g. "Authentication API"
	Version    string   `json:"version"`     // bare number, e.g. "2.0"
	DocType    DocType  `json:"doc_type"`    // usually one of DocTypes
	RateLimits []string `json:"rate_limits"` // free-text statements in the order found
	Deprecated bool     `json:"deprecated"`
}

// NewMetadata returns a fresh record holding the documented defaults.
// Each call allocates a new record so callers never share state.
func NewMetadata() Metadata {
	return Metadata{
		Service:    Unknown,
		Version:    Unknown,
		DocType:    DocTypeReference,
		RateLimits: []string{},
		Deprecated: false,
	}
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	c := m
	c.RateLimits = make([]string, len(m.RateLimits))
	copy(c.RateLimits, m.RateLimits)
	return c
}

// Equal reports whether two records carry the same values.
// A nil and an empty RateLimits slice are considered equal.
func (m Metadata) Equal(other Metadata) bool {
	return m.Service == other.Service &&
		m.Version == other.Version &&
		m.DocType == other.DocType &&
		m.Deprecated == other.Deprecated &&
		slices.Equal(m.RateLimits, other.RateLimits)
}

// IndexedDocument is a document with its metadata, as held by the retrieval index.
type IndexedDocument struct {
	Document
	Metadata Metadata `json:"metadata"`
}
