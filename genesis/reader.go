// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/pod"
	"github.com/openethcore/acctstate/state"
	"github.com/openethcore/acctstate/trie"
)

// LoadAccount reads the account at addr from the state trie at root.
// It returns nil if there's no account at addr.
func LoadAccount(db hashdb.Getter, root ledger.Bytes32, addr ledger.Address) (*state.Account, error) {
	st, err := trie.NewSecureChecked(root, db)
	if err != nil {
		return nil, errors.Wrap(err, "open state trie")
	}
	data, err := st.Get(addr[:])
	if err != nil {
		return nil, errors.Wrap(err, "read state trie")
	}
	if len(data) == 0 {
		return nil, nil
	}
	return state.FromBytes(data)
}

// Dump reads every account of the state trie at root into plain-data form.
func Dump(db hashdb.Getter, root ledger.Bytes32) (pod.State, error) {
	st, err := trie.NewSecureChecked(root, db)
	if err != nil {
		return nil, errors.Wrap(err, "open state trie")
	}
	dump := make(pod.State)
	err = st.Walk(func(key, value []byte) error {
		addr := ledger.BytesToAddress(key)
		acc, err := state.FromBytes(value)
		if err != nil {
			return errors.Wrapf(err, "account %v", addr)
		}
		p, err := acc.ToPod(db)
		if err != nil {
			return errors.Wrapf(err, "account %v", addr)
		}
		dump[addr] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dump, nil
}
