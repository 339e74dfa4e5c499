package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IndexedDocumentMUS is the MUS serializer for IndexedDocument values.
// Field order: ID, Title, Content, Service, Version, DocType, RateLimits, Deprecated.
var IndexedDocumentMUS = indexedDocumentMUS{}

type indexedDocumentMUS struct{}

func (s indexedDocumentMUS) Marshal(v IndexedDocument, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += MetadataMUS.Marshal(v.Metadata, bs[n:])
	return
}

func (s indexedDocumentMUS) Unmarshal(bs []byte) (v IndexedDocument, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = MetadataMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexedDocumentMUS) Size(v IndexedDocument) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	return size + MetadataMUS.Size(v.Metadata)
}

func (s indexedDocumentMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for range 2 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = MetadataMUS.Skip(bs[n:])
	n += n1
	return
}

// MetadataMUS is the MUS serializer for Metadata values.
var MetadataMUS = metadataMUS{}

type metadataMUS struct{}

func (s metadataMUS) Marshal(v Metadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.Service, bs)
	n += ord.String.Marshal(v.Version, bs[n:])
	n += ord.String.Marshal(string(v.DocType), bs[n:])
	n += varint.Int.Marshal(len(v.RateLimits), bs[n:])
	for _, limit := range v.RateLimits {
		n += ord.String.Marshal(limit, bs[n:])
	}
	n += ord.Bool.Marshal(v.Deprecated, bs[n:])
	return
}

func (s metadataMUS) Unmarshal(bs []byte) (v Metadata, n int, err error) {
	v.Service, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Version, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var docType string
	docType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DocType = DocType(docType)
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count < 0 {
		err = ErrCorruptRecord
		return
	}
	v.RateLimits = make([]string, count)
	for i := range v.RateLimits {
		v.RateLimits[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Deprecated, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s metadataMUS) Size(v Metadata) (size int) {
	size = ord.String.Size(v.Service)
	size += ord.String.Size(v.Version)
	size += ord.String.Size(string(v.DocType))
	size += varint.Int.Size(len(v.RateLimits))
	for _, limit := range v.RateLimits {
		size += ord.String.Size(limit)
	}
	return size + ord.Bool.Size(v.Deprecated)
}

func (s metadataMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for range 3 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count < 0 {
		err = ErrCorruptRecord
		return
	}
	for range count {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	return
}
