package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec:"
)

// generationPrefix is the key prefix shared by every document written in one
// ReplaceDocuments call: prefix + big-endian generation.
func generationPrefix(generation uint64) []byte {
	buf := make([]byte, len(documentPrefix)+8)
	offset := copy(buf, documentPrefix)
	binary.BigEndian.PutUint64(buf[offset:], generation)
	return buf
}

// makeDocumentKey generates a key for the document at the given collection
// position. Format: generation prefix + big-endian position, so lexicographic
// order within a generation is collection order.
func makeDocumentKey(generation, position uint64) []byte {
	buf := make([]byte, len(documentPrefix)+16)
	offset := copy(buf, generationPrefix(generation))
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// documentPosition extracts the generation and collection position from a document key.
func documentPosition(key []byte) (generation, position uint64, ok bool) {
	if len(key) != len(documentPrefix)+16 || string(key[:len(documentPrefix)]) != documentPrefix {
		return 0, 0, false
	}
	rest := key[len(documentPrefix):]
	return binary.BigEndian.Uint64(rest[:8]), binary.BigEndian.Uint64(rest[8:]), true
}
