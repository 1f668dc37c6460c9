// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openethcore/acctstate/ledger"
)

func testHashDB(t *testing.T, db HashDB) {
	_, err := db.Get(ledger.Keccak256([]byte("missing")))
	assert.True(t, IsNotFound(err))

	value := bytes.Repeat([]byte("value"), 100)
	h1, err := db.Insert(value)
	require.NoError(t, err)
	assert.Equal(t, ledger.Keccak256(value), h1)

	h2, err := db.Insert(value)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "insert should be idempotent")

	got, err := db.Get(h1)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	empty, err := db.Insert(nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.EmptyCodeHash, empty)
	got, err = db.Get(empty)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemDB(t *testing.T) {
	db := NewMem()
	testHashDB(t, db)

	assert.Equal(t, 2, db.Len())
	assert.Equal(t, 3, db.Inserts())

	h := ledger.Keccak256(bytes.Repeat([]byte("value"), 100))
	db.Delete(h)
	_, err := db.Get(h)
	assert.True(t, IsNotFound(err))
}

func TestLevelDB(t *testing.T) {
	db, err := OpenMem()
	require.NoError(t, err)
	defer db.Close()

	testHashDB(t, db)

	_, err = db.GetProperty("head")
	assert.True(t, IsNotFound(err))

	require.NoError(t, db.PutProperty("head", []byte{1, 2, 3}))
	val, err := db.GetProperty("head")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, val)
}

func TestLevelDBPersistent(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, Options{})
	require.NoError(t, err)
	h, err := db.Insert([]byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(dir, Options{CacheSizeMB: 32})
	require.NoError(t, err)
	defer db.Close()

	// a fresh instance has a cold cache, so the value is read from disk
	got, err := db.Get(h)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(errors.Wrap(ErrNotFound, "wrapped")))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))
}

func TestGetterFunc(t *testing.T) {
	g := GetterFunc(func(ledger.Bytes32) ([]byte, error) { return []byte{1}, nil })
	v, err := g.Get(ledger.Bytes32{})
	assert.NoError(t, err)
	assert.Equal(t, []byte{1}, v)
}
