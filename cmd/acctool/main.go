// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/openethcore/acctstate/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "acctool"
	app.Usage = "Import, inspect and serve account state"
	app.Commands = []cli.Command{
		{
			Name:      "import",
			Usage:     "build the state of a genesis allocation file into the data dir",
			ArgsUsage: "<genesis.json|genesis.yaml>",
			Flags:     withCommonFlags(concurrencyFlag),
			Action:    importAction,
		},
		{
			Name:      "account",
			Usage:     "print an account",
			ArgsUsage: "<address>",
			Flags:     withCommonFlags(rootFlag),
			Action:    accountAction,
		},
		{
			Name:      "storage",
			Usage:     "print a storage slot of an account",
			ArgsUsage: "<address> <key>",
			Flags:     withCommonFlags(rootFlag),
			Action:    storageAction,
		},
		{
			Name:      "decode",
			Usage:     "decode an encoded account",
			ArgsUsage: "<hex>",
			Action:    decodeAction,
		},
		{
			Name:   "dump",
			Usage:  "print all accounts of the state as JSON",
			Flags:  withCommonFlags(rootFlag),
			Action: dumpAction,
		},
		{
			Name:   "serve",
			Usage:  "serve read-only account queries over HTTP",
			Flags:  withCommonFlags(rootFlag, apiAddrFlag),
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing state database..."); db.Close() }()

	root, err := stateRoot(ctx, db)
	if err != nil {
		return err
	}
	enableMetrics := initMetrics(ctx)

	url, stop, err := startAPIServer(ctx.String(apiAddrFlag.Name), db, root)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); stop() }()
	log.Info("API server started", "url", url, "root", root)

	if enableMetrics {
		url, stop, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); stop() }()
		log.Info("metrics server started", "url", url)
	}

	sig := <-handleExitSignal()
	log.Info("exit signal received", "signal", sig)
	return nil
}
