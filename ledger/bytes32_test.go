// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBytes32MarshalUnmarshal(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var value Bytes32
	err := json.Unmarshal([]byte(originalHex), &value)
	assert.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte("master")), value)

	marshalVal, err := json.Marshal(value)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalVal))

	marshalPtr, err := json.Marshal(&value)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(marshalPtr))
}

func TestBytes32AsMapKey(t *testing.T) {
	m := map[Bytes32]Bytes32{
		BytesToBytes32([]byte{1}): BytesToBytes32([]byte{0x12, 0x34}),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[Bytes32]Bytes32
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)

	data, err = yaml.Marshal(m)
	require.NoError(t, err)

	decoded = nil
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("1x" + "00000000000000000000000000000000000000000000000000000000000000ab")
	assert.EqualError(t, err, "invalid prefix")

	b, err := ParseBytes32("00000000000000000000000000000000000000000000000000000000000000ab")
	assert.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte{0xab}), b)
	assert.Panics(t, func() { MustParseBytes32("zz") })
}

func TestBytes32Uint256(t *testing.T) {
	b := BytesToBytes32([]byte{0x12, 0x34})
	assert.Equal(t, uint256.NewInt(0x1234), b.Uint256())
	assert.Equal(t, b, Uint256ToBytes32(uint256.NewInt(0x1234)))
	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, b.IsZero())
	assert.Equal(t, "0x00000000…00001234", b.AbbrevString())
}

func TestAddress(t *testing.T) {
	addr := MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())
	assert.Equal(t, Keccak256(addr[:]), addr.Hash())
	assert.False(t, addr.IsZero())

	data, err := json.Marshal(map[Address]int{addr: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed":1}`, string(data))

	_, err = ParseAddress("0x12")
	assert.Error(t, err)

	a, b := BytesToAddress([]byte{1}), BytesToAddress([]byte{2})
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
}
