// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/openethcore/acctstate/ledger"
)

var _ HashDB = (*LevelDB)(nil)

// key space prefixes
const (
	blobSpace     = byte('h')
	propertySpace = byte('p')
)

var (
	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
)

// Options options for creating level db instance.
type Options struct {
	CacheSizeMB            int // size of the in-process blob cache, and hint for leveldb caches
	OpenFilesCacheCapacity int
}

// LevelDB is a HashDB persisted in goleveldb. Blobs are snappy compressed on disk
// and served from an in-process cache when possible.
type LevelDB struct {
	db    *leveldb.DB
	cache *blobCache
}

// Open opens a persistent level db instance.
// Create an empty one if not exists, or open if already there.
func Open(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open persistent level db")
	}
	return openLevelDB(stg, opts)
}

// OpenMem creates a level db in memory.
func OpenMem() (*LevelDB, error) {
	return openLevelDB(storage.NewMemStorage(), Options{})
}

func openLevelDB(stg storage.Storage, opts Options) (*LevelDB, error) {
	if opts.CacheSizeMB < 16 {
		opts.CacheSizeMB = 16
	}
	if opts.OpenFilesCacheCapacity < 16 {
		opts.OpenFilesCacheCapacity = 16
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSizeMB / 2 * opt.MiB,
		WriteBuffer:            opts.CacheSizeMB / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
		Compression:            opt.NoCompression, // values are compressed by ourselves
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{
		db:    db,
		cache: newBlobCache(opts.CacheSizeMB),
	}, nil
}

func spaceKey(space byte, key []byte) []byte {
	return append([]byte{space}, key...)
}

// Get implements Getter.
func (l *LevelDB) Get(hash ledger.Bytes32) ([]byte, error) {
	if blob, ok := l.cache.get(hash); ok {
		return blob, nil
	}
	enc, err := l.db.Get(spaceKey(blobSpace, hash[:]), &readOpt)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get %v", hash)
	}
	blob, err := snappy.Decode(nil, enc)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %v", hash)
	}
	l.cache.add(hash, blob)
	return blob, nil
}

// Insert implements HashDB.
func (l *LevelDB) Insert(value []byte) (ledger.Bytes32, error) {
	hash := ledger.Keccak256(value)
	key := spaceKey(blobSpace, hash[:])

	has, err := l.db.Has(key, &readOpt)
	if err != nil {
		return ledger.Bytes32{}, errors.Wrapf(err, "has %v", hash)
	}
	if !has {
		if err := l.db.Put(key, snappy.Encode(nil, value), &writeOpt); err != nil {
			return ledger.Bytes32{}, errors.Wrapf(err, "put %v", hash)
		}
		metricInsertBytes().Add(int64(len(value)))
	}
	l.cache.add(hash, value)
	return hash, nil
}

// GetProperty returns a named value which is not content addressed,
// e.g. the last imported state root.
func (l *LevelDB) GetProperty(name string) ([]byte, error) {
	val, err := l.db.Get(spaceKey(propertySpace, []byte(name)), &readOpt)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get property %q", name)
	}
	return val, nil
}

// PutProperty saves a named value.
func (l *LevelDB) PutProperty(name string, val []byte) error {
	return errors.Wrapf(
		l.db.Put(spaceKey(propertySpace, []byte(name)), val, &writeOpt),
		"put property %q", name)
}

// Close closes the level db.
// Later operations will all fail.
func (l *LevelDB) Close() error {
	return l.db.Close()
}
