// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "datadir",
		Value:  defaultDataDir(),
		Usage:  "directory for the state database",
		EnvVar: "ACCTOOL_DATADIR",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  256,
		Usage:  "megabytes of ram allocated to the state database cache",
		EnvVar: "ACCTOOL_CACHE",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		Usage:  "log verbosity (0-5)",
		EnvVar: "ACCTOOL_VERBOSITY",
	}
	logFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Value:  "terminal",
		Usage:  "log output format (terminal|logfmt|json)",
		EnvVar: "ACCTOOL_LOG_FORMAT",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "ACCTOOL_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: "ACCTOOL_METRICS_ADDR",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
		EnvVar: "ACCTOOL_API_ADDR",
	}
	rootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "state root to read, defaults to the last imported one",
	}
	concurrencyFlag = cli.IntFlag{
		Name:  "concurrency",
		Usage: "number of accounts committed in parallel, defaults to the number of CPUs",
	}
)

var commonFlags = []cli.Flag{
	dataDirFlag,
	cacheFlag,
	verbosityFlag,
	logFormatFlag,
	enableMetricsFlag,
	metricsAddrFlag,
}

func withCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, commonFlags...), flags...)
}
