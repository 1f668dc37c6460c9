// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/openethcore/acctstate/genesis"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/log"
	"github.com/openethcore/acctstate/state"
)

func importAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("genesis file required")
	}
	if err := initLogger(ctx); err != nil {
		return err
	}
	initMetrics(ctx)

	alloc, err := genesis.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	root, _, err := new(genesis.Builder).
		Alloc(alloc).
		Concurrency(ctx.Int(concurrencyFlag.Name)).
		Build(context.Background(), db)
	if err != nil {
		return errors.Wrap(err, "build state")
	}
	if err := db.PutProperty(bestRootKey, root[:]); err != nil {
		return err
	}
	log.Info("state imported", "accounts", len(alloc), "root", root)
	fmt.Fprintln(ctx.App.Writer, root)
	return nil
}

func loadAccount(ctx *cli.Context, db *hashdb.LevelDB) (*state.Account, error) {
	addr, err := parseAddress(ctx.Args().First())
	if err != nil {
		return nil, err
	}
	root, err := stateRoot(ctx, db)
	if err != nil {
		return nil, err
	}
	acc, err := genesis.LoadAccount(db, root, addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.Errorf("account %v not found", addr)
	}
	return acc, nil
}

func accountAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("address required")
	}
	if err := initLogger(ctx); err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	acc, err := loadAccount(ctx, db)
	if err != nil {
		return err
	}
	acc.CacheCodeSize(db)
	printAccount(ctx.App.Writer, acc)
	return nil
}

func storageAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("address and key required")
	}
	key, err := ledger.ParseBytes32(ctx.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "invalid key")
	}
	if err := initLogger(ctx); err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	acc, err := loadAccount(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, acc.StorageAt(db, key))
	return nil
}

func decodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("encoded account required")
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "invalid hex")
	}
	acc, err := state.FromBytes(data)
	if err != nil {
		return err
	}
	printAccount(ctx.App.Writer, acc)
	return nil
}

func dumpAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	root, err := stateRoot(ctx, db)
	if err != nil {
		return err
	}
	dump, err := genesis.Dump(db, root)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

func printAccount(w io.Writer, acc *state.Account) {
	fmt.Fprintf(w, "balance:      %v\n", acc.Balance())
	fmt.Fprintf(w, "nonce:        %v\n", acc.Nonce())
	if root, ok := acc.StorageRoot(); ok {
		fmt.Fprintf(w, "storage root: %v\n", root)
	}
	fmt.Fprintf(w, "code hash:    %v\n", acc.CodeHash())
	if size, ok := acc.CodeSize(); ok {
		fmt.Fprintf(w, "code size:    %d\n", size)
	} else {
		fmt.Fprintln(w, "code size:    unknown")
	}
}
