// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"fmt"

	"github.com/openethcore/acctstate/ledger"
)

// MissingNodeError is returned by the trie functions (Get, Update, Delete)
// in the case where a trie node is not present in the local database. It contains
// information necessary for retrieving the missing node.
type MissingNodeError struct {
	NodeHash ledger.Bytes32 // hash of the missing node
	Path     []byte         // hex-encoded path to the missing node
	Err      error          // the actual store error
}

func (err *MissingNodeError) Error() string {
	return fmt.Sprintf("missing trie node %v (path %x) %v", err.NodeHash, err.Path, err.Err)
}

func (err *MissingNodeError) Unwrap() error {
	return err.Err
}

// InvalidNodeError is returned by a checked trie when a stored blob is not a
// valid trie node.
type InvalidNodeError struct {
	NodeHash ledger.Bytes32 // hash of the invalid node
	Path     []byte         // hex-encoded path to the invalid node
	Err      error
}

func (err *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid trie node %v (path %x): %v", err.NodeHash, err.Path, err.Err)
}

func (err *InvalidNodeError) Unwrap() error {
	return err.Err
}
