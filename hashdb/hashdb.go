// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package hashdb implements the hash addressed backing store shared by tries and
// code blobs. Values are keyed by the Keccak256 hash of their content.
package hashdb

import (
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/log"
)

var logger = log.WithContext("pkg", "hashdb")

// ErrNotFound is returned by Get when no value is stored under the hash.
var ErrNotFound = errors.New("hashdb: not found")

// IsNotFound checks whether err indicates a missing value.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Getter reads values by content hash.
type Getter interface {
	// Get returns the value stored under hash, or an error satisfying IsNotFound.
	// The returned slice must not be modified.
	Get(hash ledger.Bytes32) ([]byte, error)
}

// HashDB is a content addressed store.
type HashDB interface {
	Getter
	// Insert stores value and returns its Keccak256 hash. Inserting the same
	// content again is a no-op returning the same hash.
	Insert(value []byte) (ledger.Bytes32, error)
}

// GetterFunc implements Getter.
type GetterFunc func(hash ledger.Bytes32) ([]byte, error)

// Get implements Getter.
func (f GetterFunc) Get(hash ledger.Bytes32) ([]byte, error) { return f(hash) }
