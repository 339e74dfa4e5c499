package badger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryBackend(t *testing.T) {
	backend, err := OpenMemoryBackend(nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenMemoryBackend(nil)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestWithTx(t *testing.T) {
	backend, err := OpenMemoryBackend(nil)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	var got []byte
	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte("k"))
		if err != nil {
			return err
		}
		got, err = item.ValueCopy(nil)
		return err
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMakeDocumentKey_Ordering(t *testing.T) {
	k1 := makeDocumentKey(1, 1)
	k2 := makeDocumentKey(1, 2)
	k256 := makeDocumentKey(1, 256)
	next := makeDocumentKey(2, 0)

	assert.Less(t, string(k1), string(k2))
	assert.Less(t, string(k2), string(k256))
	assert.Less(t, string(k256), string(next))
	assert.True(t, bytes.HasPrefix(k256, generationPrefix(1)))
	assert.False(t, bytes.HasPrefix(next, generationPrefix(1)))

	gen, pos, ok := documentPosition(k256)
	require.True(t, ok)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, uint64(256), pos)

	_, _, ok = documentPosition([]byte("docrec:short"))
	assert.False(t, ok)
}

func TestBadgerLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &badgerLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}

	l.Warningf("value log %d rotated\n", 3)
	l.Infof("replay done\n")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="value log 3 rotated"`)
	assert.NotContains(t, out, "replay done", "info is demoted below the handler level")
}
