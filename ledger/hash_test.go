// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/rand/v2"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestWellKnownHashes(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", EmptyCodeHash.String())
	assert.Equal(t, "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421", EmptyRoot.String())
}

func TestKeccak256(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0)) //#nosec G404
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(rng.Uint64())
	}

	assert.Equal(t, Bytes32(crypto.Keccak256Hash(data)), Keccak256(data))
	assert.Equal(t, Bytes32(crypto.Keccak256Hash(data[:10], data[10:])), Keccak256(data[:10], data[10:]))

	h := NewKeccak256()
	h.Write(data)
	assert.Equal(t, Keccak256(data).Bytes(), h.Sum(nil))
}

func BenchmarkKeccak256(b *testing.B) {
	data := make([]byte, 100)

	rng := rand.New(rand.NewPCG(1, 0)) //#nosec G404
	for i := range data {
		data[i] = byte(rng.Uint64())
	}
	for b.Loop() {
		Keccak256(data)
	}
}
