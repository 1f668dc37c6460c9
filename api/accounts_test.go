// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openethcore/acctstate/genesis"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/pod"
)

var (
	contractAddr = ledger.MustParseAddress("0x0000000000000000000000000000456e65726779")
	userAddr     = ledger.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	slot         = ledger.BytesToBytes32([]byte{1})
)

func newTestServer(t *testing.T) (*httptest.Server, ledger.Bytes32) {
	code := []byte{0x55, 0x44, 0xff}
	alloc := pod.State{
		userAddr: {Balance: uint256.NewInt(0x10), Nonce: uint256.NewInt(2)},
		contractAddr: {
			Balance: uint256.NewInt(0),
			Nonce:   uint256.NewInt(0),
			Code:    &code,
			Storage: map[ledger.Bytes32]ledger.Bytes32{slot: ledger.BytesToBytes32([]byte{0x12, 0x34})},
		},
	}
	db := hashdb.NewMem()
	root, _, err := genesis.Build(context.Background(), db, alloc)
	require.NoError(t, err)

	ts := httptest.NewServer(New(db, root))
	t.Cleanup(ts.Close)
	return ts, root
}

func httpGet(t *testing.T, url string) (int, []byte) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func TestGetAccount(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := httpGet(t, ts.URL+"/accounts/"+userAddr.String())
	require.Equal(t, http.StatusOK, status, string(body))
	var acc Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, uint64(0x10), acc.Balance.Uint256().Uint64())
	assert.Equal(t, uint64(2), acc.Nonce.Uint256().Uint64())
	assert.Equal(t, ledger.EmptyRoot, acc.StorageRoot)
	assert.Equal(t, ledger.EmptyCodeHash, acc.CodeHash)
	assert.Equal(t, 0, acc.CodeSize)

	status, body = httpGet(t, ts.URL+"/accounts/"+contractAddr.String())
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, ledger.MustParseBytes32("0xaf231e631776a517ca23125370d542873eca1fb4d613ed9b5d5335a46ae5b7eb"), acc.CodeHash)
	assert.Equal(t, 3, acc.CodeSize)
	assert.NotEqual(t, ledger.EmptyRoot, acc.StorageRoot)
}

func TestGetAbsentAccount(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := httpGet(t, ts.URL+"/accounts/0x0000000000000000000000000000000000000001")
	require.Equal(t, http.StatusOK, status, string(body))
	var acc Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.True(t, acc.Balance.Uint256().IsZero())
	assert.Equal(t, ledger.EmptyCodeHash, acc.CodeHash)
}

func TestGetStorage(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := httpGet(t, ts.URL+"/accounts/"+contractAddr.String()+"/storage/"+slot.String())
	require.Equal(t, http.StatusOK, status, string(body))
	var res map[string]string
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, ledger.BytesToBytes32([]byte{0x12, 0x34}).String(), res["value"])

	status, body = httpGet(t, ts.URL+"/accounts/"+contractAddr.String()+"/storage/"+ledger.BytesToBytes32([]byte{9}).String())
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, ledger.Bytes32{}.String(), res["value"])
}

func TestGetCode(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := httpGet(t, ts.URL+"/accounts/"+contractAddr.String()+"/code")
	require.Equal(t, http.StatusOK, status, string(body))
	var res map[string]string
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "0x5544ff", res["code"])
}

func TestBadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	status, _ := httpGet(t, ts.URL+"/accounts/0x01")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = httpGet(t, ts.URL+"/accounts/"+userAddr.String()+"/storage/0x01")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = httpGet(t, ts.URL+"/accounts/"+userAddr.String()+"?root=0x01")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = httpGet(t, ts.URL+"/accounts/"+userAddr.String()+"?root="+ledger.BytesToBytes32([]byte{1}).String())
	assert.Equal(t, http.StatusNotFound, status)

	// a stored blob which is not a trie node
	codeHash := ledger.Keccak256([]byte{0x55, 0x44, 0xff})
	status, _ = httpGet(t, ts.URL+"/accounts/"+userAddr.String()+"?root="+codeHash.String())
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = httpGet(t, ts.URL+"/accounts/"+contractAddr.String()+"/storage/"+slot.String()+"?root="+codeHash.String())
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStartServer(t *testing.T) {
	url, stop, err := StartServer("localhost:0", New(hashdb.NewMem(), ledger.EmptyRoot))
	require.NoError(t, err)
	defer stop()

	status, _ := httpGet(t, url+"/accounts/"+userAddr.String())
	assert.Equal(t, http.StatusOK, status)
}
