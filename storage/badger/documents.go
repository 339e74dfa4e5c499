package badger

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/metadex/core"
	"github.com/poiesic/metadex/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
//
// Each ReplaceDocuments call writes the new collection under a fresh
// generation prefix, switches the active generation and then removes the
// previous one. Readers only ever see a complete generation.
type DocumentRepository struct {
	backend    *Backend
	mu         sync.RWMutex
	generation uint64 // active generation; 0 means nothing written yet
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository on top of backend.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrStorageClosed)
	}
	return &DocumentRepository{backend: backend}, nil
}

// Close closes the underlying backend.
func (r *DocumentRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}

// ReplaceDocuments swaps the stored collection for docs. Writes go through a
// badger WriteBatch, which commits in as many transactions as the data needs,
// so the collection size is not bounded by the transaction size limit.
// On failure the previous collection stays active.
func (r *DocumentRepository) ReplaceDocuments(ctx context.Context, docs []core.IndexedDocument) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.generation + 1
	if err := r.writeGeneration(ctx, next, docs); err != nil {
		if cleanupErr := r.deleteGeneration(next); cleanupErr != nil {
			r.backend.logger.Warn("failed to remove partial generation", "generation", next, "err", cleanupErr)
		}
		return err
	}

	previous := r.generation
	r.generation = next

	removed := 0
	if previous > 0 {
		var err error
		removed, err = r.countGeneration(previous)
		if err == nil {
			err = r.deleteGeneration(previous)
		}
		if err != nil {
			// The new collection is already active; stale keys are unreachable.
			r.backend.logger.Warn("failed to remove previous generation", "generation", previous, "err", err)
		}
	}

	r.backend.logger.Debug("replaced documents", "generation", next, "removed", removed, "stored", len(docs))
	return nil
}

func (r *DocumentRepository) writeGeneration(ctx context.Context, generation uint64, docs []core.IndexedDocument) error {
	wb := r.backend.NewWriteBatch()
	for i := range docs {
		if err := ctx.Err(); err != nil {
			wb.Cancel()
			return err
		}
		key := makeDocumentKey(generation, uint64(i))
		if err := wb.Set(key, storage.MarshalIndexedDocument(&docs[i])); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// generationKeys lists the keys stored under generation.
func (r *DocumentRepository) generationKeys(generation uint64) ([][]byte, error) {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(generation)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	return keys, err
}

func (r *DocumentRepository) countGeneration(generation uint64) (int, error) {
	keys, err := r.generationKeys(generation)
	return len(keys), err
}

func (r *DocumentRepository) deleteGeneration(generation uint64) error {
	keys, err := r.generationKeys(generation)
	if err != nil || len(keys) == 0 {
		return err
	}
	wb := r.backend.NewWriteBatch()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// ForEachDocument iterates stored documents in collection order.
func (r *DocumentRepository) ForEachDocument(ctx context.Context, fn func(doc core.IndexedDocument) error) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.generation == 0 {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(r.generation)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc *core.IndexedDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalIndexedDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(*doc); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountDocuments returns the number of stored documents.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.generation == 0 {
		return 0, ctx.Err()
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(r.generation)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if gen, _, ok := documentPosition(iter.Item().Key()); ok && gen == r.generation {
				count++
			}
		}
		return ctx.Err()
	}, false)
	return count, err
}
