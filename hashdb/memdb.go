// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"bytes"
	"sync"

	"github.com/openethcore/acctstate/ledger"
)

var _ HashDB = (*MemDB)(nil)

// MemDB is an in-memory HashDB, mainly for tests and tools.
type MemDB struct {
	lock    sync.RWMutex
	kvs     map[ledger.Bytes32][]byte
	inserts int
}

// NewMem creates an empty MemDB.
func NewMem() *MemDB {
	return &MemDB{kvs: make(map[ledger.Bytes32][]byte)}
}

// Get implements Getter.
func (m *MemDB) Get(hash ledger.Bytes32) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if v, ok := m.kvs[hash]; ok {
		return v, nil
	}
	return nil, ErrNotFound
}

// Insert implements HashDB.
func (m *MemDB) Insert(value []byte) (ledger.Bytes32, error) {
	hash := ledger.Keccak256(value)

	m.lock.Lock()
	defer m.lock.Unlock()

	m.inserts++
	if _, ok := m.kvs[hash]; !ok {
		m.kvs[hash] = bytes.Clone(value)
	}
	return hash, nil
}

// Len returns the number of distinct values stored.
func (m *MemDB) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.kvs)
}

// Inserts returns how many times Insert has been called.
func (m *MemDB) Inserts() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.inserts
}

// Delete removes the value stored under hash. It exists to simulate
// store corruption in tests.
func (m *MemDB) Delete(hash ledger.Bytes32) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.kvs, hash)
}
