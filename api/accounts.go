// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/genesis"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/pod"
	"github.com/openethcore/acctstate/state"
	"github.com/openethcore/acctstate/trie"
)

// Account is the JSON view of an account.
type Account struct {
	Balance     *pod.HexOrDecimal256 `json:"balance"`
	Nonce       *pod.HexOrDecimal256 `json:"nonce"`
	StorageRoot ledger.Bytes32       `json:"storageRoot"`
	CodeHash    ledger.Bytes32       `json:"codeHash"`
	CodeSize    int                  `json:"codeSize"`
}

// Accounts serves account queries.
type Accounts struct {
	db   hashdb.Getter
	root ledger.Bytes32
}

// NewAccounts creates Accounts reading from the state trie at root.
func NewAccounts(db hashdb.Getter, root ledger.Bytes32) *Accounts {
	return &Accounts{db: db, root: root}
}

func (a *Accounts) stateRoot(req *http.Request) (ledger.Bytes32, error) {
	s := req.URL.Query().Get("root")
	if s == "" {
		return a.root, nil
	}
	root, err := ledger.ParseBytes32(s)
	if err != nil {
		return ledger.Bytes32{}, badRequest(errors.WithMessage(err, "root"))
	}
	return root, nil
}

func (a *Accounts) loadAccount(req *http.Request) (*state.Account, error) {
	addr, err := ledger.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return nil, badRequest(errors.WithMessage(err, "address"))
	}
	root, err := a.stateRoot(req)
	if err != nil {
		return nil, err
	}
	acc, err := genesis.LoadAccount(a.db, root, *addr)
	if err != nil {
		if hashdb.IsNotFound(err) {
			return nil, notFound(errors.WithMessage(err, "root"))
		}
		var invalid *trie.InvalidNodeError
		if errors.As(err, &invalid) {
			return nil, badRequest(errors.WithMessage(err, "root"))
		}
		return nil, err
	}
	return acc, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	acc, err := a.loadAccount(req)
	if err != nil {
		return err
	}
	if acc == nil {
		// absent accounts read as empty
		acc = state.NewBasic(new(uint256.Int), new(uint256.Int))
	}
	acc.CacheCodeSize(a.db)
	size, _ := acc.CodeSize()
	root, _ := acc.StorageRoot()
	return writeJSON(w, &Account{
		Balance:     pod.NewHexOrDecimal256(acc.Balance()),
		Nonce:       pod.NewHexOrDecimal256(acc.Nonce()),
		StorageRoot: root,
		CodeHash:    acc.CodeHash(),
		CodeSize:    size,
	})
}

func (a *Accounts) handleGetCode(w http.ResponseWriter, req *http.Request) error {
	acc, err := a.loadAccount(req)
	if err != nil {
		return err
	}
	var code []byte
	if acc != nil {
		if !acc.CacheCode(a.db) {
			return errors.Errorf("code %v not found", acc.CodeHash())
		}
		code, _ = acc.Code()
	}
	return writeJSON(w, map[string]string{"code": hexutil.Encode(code)})
}

func (a *Accounts) handleGetStorage(w http.ResponseWriter, req *http.Request) error {
	key, err := ledger.ParseBytes32(mux.Vars(req)["key"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "key"))
	}
	acc, err := a.loadAccount(req)
	if err != nil {
		return err
	}
	var value ledger.Bytes32
	if acc != nil {
		value = acc.StorageAt(a.db, key)
	}
	return writeJSON(w, map[string]string{"value": value.String()})
}

// Mount registers the account routes under pathPrefix.
func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(wrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/code").Methods(http.MethodGet).HandlerFunc(wrapHandlerFunc(a.handleGetCode))
	sub.Path("/{address}/storage/{key}").Methods(http.MethodGet).HandlerFunc(wrapHandlerFunc(a.handleGetStorage))
}
