// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/metrics"
	"github.com/openethcore/acctstate/pod"
	"github.com/openethcore/acctstate/state"
	"github.com/openethcore/acctstate/trie"
)

var metricBuiltAccounts = metrics.LazyLoadGauge("genesis_accounts")

// Builder helper to build genesis state.
type Builder struct {
	alloc       pod.State
	concurrency int
}

// Alloc adds all accounts of alloc, replacing accounts at the same address.
func (b *Builder) Alloc(alloc pod.State) *Builder {
	for addr, acc := range alloc {
		b.Account(addr, acc)
	}
	return b
}

// Account adds one account.
func (b *Builder) Account(addr ledger.Address, acc pod.Account) *Builder {
	if b.alloc == nil {
		b.alloc = make(pod.State)
	}
	b.alloc[addr] = acc
	return b
}

// Concurrency limits the number of accounts committed in parallel.
// Defaults to the number of CPUs.
func (b *Builder) Concurrency(n int) *Builder {
	b.concurrency = n
	return b
}

// Build commits storage and code of every account into db, then folds the
// accounts into the state trie keyed by address. It returns the state root
// and the committed, clean accounts.
func (b *Builder) Build(ctx context.Context, db hashdb.HashDB) (ledger.Bytes32, map[ledger.Address]*state.Account, error) {
	addrs := b.alloc.Addresses()
	accounts := make([]*state.Account, len(addrs))

	limit := b.concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, addr := range addrs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acc, err := commitAccount(db, b.alloc[addr])
			if err != nil {
				return errors.Wrapf(err, "account %v", addr)
			}
			accounts[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ledger.Bytes32{}, nil, err
	}

	st, err := trie.NewSecure(ledger.Bytes32{}, db)
	if err != nil {
		return ledger.Bytes32{}, nil, err
	}
	result := make(map[ledger.Address]*state.Account, len(addrs))
	for i, addr := range addrs {
		if err := st.Update(addr[:], accounts[i].Bytes()); err != nil {
			return ledger.Bytes32{}, nil, errors.Wrap(err, "update state trie")
		}
		result[addr] = accounts[i]
	}
	root, err := st.Commit(db)
	if err != nil {
		return ledger.Bytes32{}, nil, errors.Wrap(err, "commit state trie")
	}
	metricBuiltAccounts().Set(int64(len(addrs)))
	logger.Info("genesis state built", "accounts", len(addrs), "root", root)
	return root, result, nil
}

// Build builds alloc into db with default settings.
func Build(ctx context.Context, db hashdb.HashDB, alloc pod.State) (ledger.Bytes32, map[ledger.Address]*state.Account, error) {
	return new(Builder).Alloc(alloc).Build(ctx, db)
}

func commitAccount(db hashdb.HashDB, p pod.Account) (*state.Account, error) {
	acc := state.FromPod(p)
	// pod code arrives with its hash set, so CommitCode won't store it
	if code, ok := acc.Code(); ok && len(code) > 0 {
		if _, err := db.Insert(code); err != nil {
			return nil, errors.Wrap(err, "insert code")
		}
	}
	if err := acc.CommitStorage(trie.SecureFactory{}, db); err != nil {
		return nil, err
	}
	if err := acc.CommitCode(db); err != nil {
		return nil, err
	}
	if err := acc.SetClean(); err != nil {
		return nil, err
	}
	return acc, nil
}
