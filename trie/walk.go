// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"errors"
	"fmt"
)

// ErrStopWalk can be returned by a WalkFunc to end the walk early without error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for every leaf visited by Walk, in key order.
type WalkFunc func(key, value []byte) error

// Walk visits all leaves of the trie in key order. Nodes not yet loaded are
// resolved from the database but not kept in memory.
func (t *Trie) Walk(fn WalkFunc) error {
	err := t.walk(t.root, nil, fn)
	if err == ErrStopWalk {
		return nil
	}
	return err
}

func (t *Trie) walk(n node, path []byte, fn WalkFunc) error {
	switch n := n.(type) {
	case nil:
		return nil
	case valueNode:
		return fn(hexToKeybytes(path), n)
	case *shortNode:
		return t.walk(n.Val, concat(path, n.Key...), fn)
	case *fullNode:
		// the value slot sorts before all children
		if n.Children[16] != nil {
			if err := t.walk(n.Children[16], concat(path, 16), fn); err != nil {
				return err
			}
		}
		for i := range 16 {
			if err := t.walk(n.Children[i], concat(path, byte(i)), fn); err != nil {
				return err
			}
		}
		return nil
	case hashNode:
		rn, err := t.resolveHash(n, path)
		if err != nil {
			return err
		}
		return t.walk(rn, path, fn)
	default:
		panic(fmt.Sprintf("%T: invalid node: %v", n, n))
	}
}
