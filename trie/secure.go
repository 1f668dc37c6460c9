// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
)

// SecureTrie wraps a trie with key hashing. In a secure trie, all
// access operations hash the key using keccak256. This prevents
// calling code from creating long chains of nodes that
// increase the access time.
//
// Key preimages are written to the database on commit, under their own hash,
// so that Walk can report the original keys.
//
// SecureTrie is not safe for concurrent use.
type SecureTrie struct {
	trie      Trie
	preimages map[ledger.Bytes32][]byte
}

// NewSecure creates a secure trie with an existing root node from db.
func NewSecure(root ledger.Bytes32, db hashdb.Getter) (*SecureTrie, error) {
	trie, err := New(root, db)
	if err != nil {
		return nil, err
	}
	return &SecureTrie{trie: *trie}, nil
}

// NewSecureChecked is like NewSecure, with the node checks of NewChecked.
func NewSecureChecked(root ledger.Bytes32, db hashdb.Getter) (*SecureTrie, error) {
	trie, err := NewChecked(root, db)
	if err != nil {
		return nil, err
	}
	return &SecureTrie{trie: *trie}, nil
}

// Get returns the value for key stored in the trie.
// The value bytes must not be modified by the caller.
func (t *SecureTrie) Get(key []byte) ([]byte, error) {
	hk := ledger.Keccak256(key)
	return t.trie.Get(hk[:])
}

// Update associates key with value in the trie. An empty value deletes the key.
func (t *SecureTrie) Update(key, value []byte) error {
	hk := ledger.Keccak256(key)
	if err := t.trie.Update(hk[:], value); err != nil {
		return err
	}
	if len(value) > 0 {
		if t.preimages == nil {
			t.preimages = make(map[ledger.Bytes32][]byte)
		}
		t.preimages[hk] = append([]byte(nil), key...)
	}
	return nil
}

// Delete removes any existing value for key from the trie.
func (t *SecureTrie) Delete(key []byte) error {
	hk := ledger.Keccak256(key)
	return t.trie.Delete(hk[:])
}

// Hash returns the root hash of the trie.
func (t *SecureTrie) Hash() ledger.Bytes32 {
	return t.trie.Hash()
}

// Commit writes pending key preimages and all dirty nodes into db.
func (t *SecureTrie) Commit(db hashdb.HashDB) (ledger.Bytes32, error) {
	for _, key := range t.preimages {
		if _, err := db.Insert(key); err != nil {
			return ledger.Bytes32{}, errors.Wrap(err, "store key preimage")
		}
	}
	t.preimages = nil
	return t.trie.Commit(db)
}

// Walk visits all leaves in hashed key order, passing the original key.
func (t *SecureTrie) Walk(fn WalkFunc) error {
	return t.trie.Walk(func(hk, value []byte) error {
		key, err := t.preimage(ledger.BytesToBytes32(hk))
		if err != nil {
			return err
		}
		return fn(key, value)
	})
}

func (t *SecureTrie) preimage(hk ledger.Bytes32) ([]byte, error) {
	if key, ok := t.preimages[hk]; ok {
		return key, nil
	}
	if t.trie.db == nil {
		return nil, errors.Errorf("missing preimage of key %v", hk)
	}
	key, err := t.trie.db.Get(hk)
	if err != nil {
		return nil, errors.Wrapf(err, "missing preimage of key %v", hk)
	}
	return key, nil
}
