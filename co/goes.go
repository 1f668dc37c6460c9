// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small goroutine helpers.
package co

import (
	"sync"
)

// Goes runs go routines and waits for them.
type Goes struct {
	wg sync.WaitGroup
}

// Go runs f in a go routine.
func (g *Goes) Go(f func()) {
	g.wg.Go(f)
}

// Wait waits for all go routines started by Go.
func (g *Goes) Wait() {
	g.wg.Wait()
}
