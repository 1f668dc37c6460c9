// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import "github.com/openethcore/acctstate/metrics"

var (
	metricCacheHitMiss = metrics.LazyLoadGaugeVec("hashdb_cache_hit_miss_count", []string{"event"})
	metricInsertBytes  = metrics.LazyLoadCounter("hashdb_insert_bytes_total")
)
