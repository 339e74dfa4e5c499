package badger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLogger routes badger's printf-style logging into slog. Badger's
// messages carry a trailing newline, which is trimmed. Info output is demoted
// to debug since an in-memory store has nothing worth reporting at info.
type badgerLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) log(level slog.Level, format string, args []any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.logger.Log(context.Background(), level, msg)
}

func (l *badgerLogger) Errorf(format string, args ...any)   { l.log(slog.LevelError, format, args) }
func (l *badgerLogger) Warningf(format string, args ...any) { l.log(slog.LevelWarn, format, args) }
func (l *badgerLogger) Infof(format string, args ...any)    { l.log(slog.LevelDebug, format, args) }
func (l *badgerLogger) Debugf(format string, args ...any)   { l.log(slog.LevelDebug, format, args) }

// OpenMemoryBackend opens an in-memory BadgerDB database.
// Nothing is written to disk and the data is gone once the backend is closed.
func OpenMemoryBackend(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "badger")

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = &badgerLogger{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// NewWriteBatch starts a batched writer that commits in as many transactions
// as needed. The caller must Flush or Cancel it.
func (b *Backend) NewWriteBatch() *badger.WriteBatch {
	return b.db.NewWriteBatch()
}
