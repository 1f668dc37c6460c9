// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state implements the in-memory account record.
// Storage reads flow as below:
//
//	[ storage changes (overlay) ]
//	            |
//	  [ storage cache (LRU) ]
//	            |
//	 [ secure storage trie ] -> [ hash db ]
//
// Writes go to the overlay only. CommitStorage drains the overlay into the
// storage trie and refills the cache. The record is not safe for concurrent use.
package state
