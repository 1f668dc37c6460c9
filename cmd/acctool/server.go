// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/openethcore/acctstate/api"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
)

func startAPIServer(addr string, db hashdb.Getter, root ledger.Bytes32) (string, func(), error) {
	return api.StartServer(addr, api.New(db, root))
}

func startMetricsServer(addr string) (string, func(), error) {
	url, stop, err := api.StartServer(addr, api.NewMetrics())
	if err != nil {
		return "", nil, err
	}
	return url + "/metrics", stop, nil
}
