// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
)

// codeCache is shared by all accounts, keyed by code hash.
var codeCache, _ = lru.NewARC(512)

// loadCode returns the code stored under hash, consulting the code cache first.
func loadCode(db hashdb.Getter, hash ledger.Bytes32) ([]byte, error) {
	if code, has := codeCache.Get(hash); has {
		metricCacheCounter().AddWithLabel(1, map[string]string{"type": "code", "event": "hit"})
		return code.([]byte), nil
	}
	metricCacheCounter().AddWithLabel(1, map[string]string{"type": "code", "event": "miss"})

	code, err := db.Get(hash)
	if err != nil {
		return nil, err
	}
	codeCache.Add(hash, code)
	return code, nil
}
