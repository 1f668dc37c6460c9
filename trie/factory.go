// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
)

// View is a mutable trie opened at a root over a backing store.
type View interface {
	Get(key []byte) ([]byte, error)
	Insert(key, value []byte) error
	Remove(key []byte) error
	// Hash returns the current root without writing anything.
	Hash() ledger.Bytes32
	// Commit writes all changes to the backing store and returns the new root.
	Commit() (ledger.Bytes32, error)
}

// Factory opens trie views.
type Factory interface {
	Open(db hashdb.HashDB, root ledger.Bytes32) (View, error)
}

// SecureFactory opens views whose keys are hashed with keccak256.
// It is the layout used for account storage and the account trie.
type SecureFactory struct{}

// Open implements Factory.
func (SecureFactory) Open(db hashdb.HashDB, root ledger.Bytes32) (View, error) {
	t, err := NewSecure(root, db)
	if err != nil {
		return nil, err
	}
	return &secureView{t, db}, nil
}

// PlainFactory opens views that use keys as they are.
type PlainFactory struct{}

// Open implements Factory.
func (PlainFactory) Open(db hashdb.HashDB, root ledger.Bytes32) (View, error) {
	t, err := New(root, db)
	if err != nil {
		return nil, err
	}
	return &plainView{t, db}, nil
}

type secureView struct {
	trie *SecureTrie
	db   hashdb.HashDB
}

func (v *secureView) Get(key []byte) ([]byte, error)  { return v.trie.Get(key) }
func (v *secureView) Insert(key, value []byte) error  { return v.trie.Update(key, value) }
func (v *secureView) Remove(key []byte) error         { return v.trie.Delete(key) }
func (v *secureView) Hash() ledger.Bytes32            { return v.trie.Hash() }
func (v *secureView) Commit() (ledger.Bytes32, error) { return v.trie.Commit(v.db) }

type plainView struct {
	trie *Trie
	db   hashdb.HashDB
}

func (v *plainView) Get(key []byte) ([]byte, error)  { return v.trie.Get(key) }
func (v *plainView) Insert(key, value []byte) error  { return v.trie.Update(key, value) }
func (v *plainView) Remove(key []byte) error         { return v.trie.Delete(key) }
func (v *plainView) Hash() ledger.Bytes32            { return v.trie.Hash() }
func (v *plainView) Commit() (ledger.Bytes32, error) { return v.trie.Commit(v.db) }
