// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/log"
	"github.com/openethcore/acctstate/metrics"
)

// property under which the last imported state root is kept
const bestRootKey = "best-root"

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".acctool")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func useColor(f *os.File) bool {
	return (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
}

func initLogger(ctx *cli.Context) error {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < 0 || verbosity > 5 {
		return errors.Errorf("--%v must be in range [0, 5]", verbosityFlag.Name)
	}
	level := log.FromLegacyLevel(verbosity)
	handler, err := log.NewHandler(os.Stderr, ctx.String(logFormatFlag.Name), level, useColor(os.Stderr))
	if err != nil {
		return err
	}
	log.SetDefault(handler)
	return nil
}

func initMetrics(ctx *cli.Context) bool {
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		return true
	}
	return false
}

func openDB(ctx *cli.Context) (*hashdb.LevelDB, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return nil, errors.New("--" + dataDirFlag.Name + " is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", dir)
	}
	path := filepath.Join(dir, "state.db")
	db, err := hashdb.Open(path, hashdb.Options{CacheSizeMB: ctx.Int(cacheFlag.Name)})
	if err != nil {
		return nil, err
	}
	log.Debug("state database opened", "path", path)
	return db, nil
}

// stateRoot returns the root given by --root, or the persisted one.
func stateRoot(ctx *cli.Context, db *hashdb.LevelDB) (ledger.Bytes32, error) {
	if s := ctx.String(rootFlag.Name); s != "" {
		root, err := ledger.ParseBytes32(s)
		if err != nil {
			return ledger.Bytes32{}, errors.Wrap(err, "--"+rootFlag.Name)
		}
		return root, nil
	}
	val, err := db.GetProperty(bestRootKey)
	if err != nil {
		if hashdb.IsNotFound(err) {
			return ledger.Bytes32{}, errors.New("no state imported yet")
		}
		return ledger.Bytes32{}, err
	}
	return ledger.BytesToBytes32(val), nil
}

func handleExitSignal() <-chan os.Signal {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
	return exitSignalCh
}

func parseAddress(s string) (ledger.Address, error) {
	addr, err := ledger.ParseAddress(s)
	if err != nil {
		return ledger.Address{}, errors.Wrapf(err, "invalid address %q", s)
	}
	return *addr, nil
}
