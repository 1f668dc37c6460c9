// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/qianbin/directcache"

	"github.com/openethcore/acctstate/cache"
	"github.com/openethcore/acctstate/ledger"
)

// blobCache caches recently read or written values in front of the disk store.
type blobCache struct {
	blobs       *directcache.Cache
	stats       cache.Stats
	lastLogTime atomic.Int64
}

func newBlobCache(sizeMB int) *blobCache {
	c := &blobCache{blobs: directcache.New(sizeMB * 1024 * 1024)}
	c.lastLogTime.Store(time.Now().UnixNano())
	return c
}

func (c *blobCache) add(hash ledger.Bytes32, blob []byte) {
	_ = c.blobs.Set(hash[:], blob)
}

func (c *blobCache) get(hash ledger.Bytes32) ([]byte, bool) {
	var blob []byte
	if c.blobs.AdvGet(hash[:], func(val []byte) {
		blob = slices.Clone(val)
	}, false) {
		if c.stats.Hit()%2000 == 0 {
			c.log()
		}
		return blob, true
	}
	c.stats.Miss()
	return nil, false
}

// log reports stats at most every 20 seconds.
func (c *blobCache) log() {
	now := time.Now().UnixNano()
	last := c.lastLogTime.Swap(now)

	if now-last > int64(time.Second*20) {
		changed, hit, miss := c.stats.Stats()
		if changed {
			logger.Info("blob cache stats", "lookups", hit+miss, "hitrate", cache.HitRate(hit, miss))
		}
		metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
		metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
	} else {
		c.lastLogTime.CompareAndSwap(now, last)
	}
}
