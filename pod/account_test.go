// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pod_test

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/pod"
)

const slot0 = "0x0000000000000000000000000000000000000000000000000000000000000000"
const val1234 = "0x0000000000000000000000000000000000000000000000000000000000001234"

func TestAccountJSON(t *testing.T) {
	input := `{
		"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed": {"balance": "0x45"},
		"0x0000000000000000000000000000000000000001": {
			"balance": 1000,
			"nonce": "7",
			"code": "0x5544ff",
			"storage": {"` + slot0 + `": "` + val1234 + `"}
		}
	}`

	var state pod.State
	require.NoError(t, json.Unmarshal([]byte(input), &state))
	require.Len(t, state, 2)

	basic := state[ledger.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")]
	assert.Equal(t, uint256.NewInt(69), basic.Balance)
	assert.True(t, basic.Nonce.IsZero())
	assert.Nil(t, basic.Code)
	assert.Empty(t, basic.Storage)

	contract := state[ledger.MustParseAddress("0x0000000000000000000000000000000000000001")]
	assert.Equal(t, uint256.NewInt(1000), contract.Balance)
	assert.Equal(t, uint256.NewInt(7), contract.Nonce)
	require.NotNil(t, contract.Code)
	assert.Equal(t, []byte{0x55, 0x44, 0xff}, *contract.Code)
	assert.Equal(t, ledger.MustParseBytes32(val1234), contract.Storage[ledger.MustParseBytes32(slot0)])

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var again pod.State
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, state, again)
}

func TestAccountJSONInvalid(t *testing.T) {
	var acc pod.Account
	assert.Error(t, json.Unmarshal([]byte(`{"balance": "-1"}`), &acc))
	assert.Error(t, json.Unmarshal([]byte(`{"balance": "0x1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"}`), &acc))
	assert.Error(t, json.Unmarshal([]byte(`{"balance": "abc"}`), &acc))
	assert.Error(t, json.Unmarshal([]byte(`{"code": "5544"}`), &acc))
}

func TestAccountYAML(t *testing.T) {
	input := `
"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed":
  balance: 0x45
"0x0000000000000000000000000000000000000001":
  balance: 1000
  nonce: 7
  code: "0x5544ff"
  storage:
    "` + slot0 + `": "` + val1234 + `"
`
	var state pod.State
	require.NoError(t, yaml.Unmarshal([]byte(input), &state))
	require.Len(t, state, 2)

	basic := state[ledger.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")]
	assert.Equal(t, uint256.NewInt(69), basic.Balance)
	assert.Nil(t, basic.Code)

	contract := state[ledger.MustParseAddress("0x0000000000000000000000000000000000000001")]
	assert.Equal(t, uint256.NewInt(1000), contract.Balance)
	assert.Equal(t, uint256.NewInt(7), contract.Nonce)
	require.NotNil(t, contract.Code)
	assert.Equal(t, []byte{0x55, 0x44, 0xff}, *contract.Code)
	assert.Len(t, contract.Storage, 1)

	var bad pod.State
	assert.Error(t, yaml.Unmarshal([]byte(`"0x01": {balance: 1}`), &bad))
	assert.Error(t, yaml.Unmarshal([]byte(`"0x0000000000000000000000000000000000000001": {storage: {"0x01": "0x02"}}`), &bad))
}

func TestAddresses(t *testing.T) {
	state := pod.State{
		ledger.MustParseAddress("0x0000000000000000000000000000000000000003"): {},
		ledger.MustParseAddress("0x0000000000000000000000000000000000000001"): {},
		ledger.MustParseAddress("0x0000000000000000000000000000000000000002"): {},
	}
	addrs := state.Addresses()
	require.Len(t, addrs, 3)
	for i, addr := range addrs {
		assert.Equal(t, byte(i+1), addr[19])
	}
}

func TestAccountString(t *testing.T) {
	code := []byte{0x55}
	acc := pod.Account{Balance: uint256.NewInt(69), Code: &code}
	assert.Equal(t, "(bal=69; nonce=0; code=1 bytes #0x37bf2238…aa45f1be; storage=0 items)", acc.String())

	acc.Code = nil
	assert.Contains(t, acc.String(), "code=unknown")
}
