// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves read-only account queries over HTTP.
package api

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/co"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/log"
	"github.com/openethcore/acctstate/metrics"
)

var logger = log.WithContext("pkg", "api")

// New returns the API handler reading accounts from the state trie at root.
func New(db hashdb.Getter, root ledger.Bytes32) http.Handler {
	router := mux.NewRouter()
	NewAccounts(db, root).Mount(router, "/accounts")
	return handlers.CompressHandler(router)
}

// NewMetrics returns the handler serving metrics under /metrics.
func NewMetrics() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}

// StartServer serves handler on addr. It returns the listening URL and a
// function to shut the server down.
func StartServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("API server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		goes.Wait()
	}, nil
}
