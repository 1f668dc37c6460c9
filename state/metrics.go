// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/openethcore/acctstate/metrics"

var (
	metricCommitCounter = metrics.LazyLoadCounterVec("account_commit_count", []string{"type", "result"})
	metricCacheCounter  = metrics.LazyLoadCounterVec("account_cache_count", []string{"type", "event"})
	metricCommitKeys    = metrics.LazyLoadHistogram("account_commit_keys", metrics.BucketCommitKeys)
)
