// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pod defines the plain-data form of accounts, used for genesis
// import and state snapshots.
package pod

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/openethcore/acctstate/ledger"
)

// Account is a fully materialized account, with no trie behind it.
type Account struct {
	Balance *uint256.Int
	Nonce   *uint256.Int
	Storage map[ledger.Bytes32]ledger.Bytes32
	// Code is nil if the code is not known.
	Code *[]byte
}

type accountJSON struct {
	Balance *HexOrDecimal256                  `json:"balance"`
	Nonce   *HexOrDecimal256                  `json:"nonce,omitempty"`
	Storage map[ledger.Bytes32]ledger.Bytes32 `json:"storage,omitempty"`
	Code    *hexutil.Bytes                    `json:"code,omitempty"`
}

type accountYAML struct {
	Balance *HexOrDecimal256  `yaml:"balance"`
	Nonce   *HexOrDecimal256  `yaml:"nonce"`
	Storage map[string]string `yaml:"storage"`
	Code    *string           `yaml:"code"`
}

// MarshalJSON implements json.Marshaler.
func (a Account) MarshalJSON() ([]byte, error) {
	var enc accountJSON
	enc.Balance = NewHexOrDecimal256(orZero(a.Balance))
	if a.Nonce != nil && !a.Nonce.IsZero() {
		enc.Nonce = NewHexOrDecimal256(a.Nonce)
	}
	if len(a.Storage) > 0 {
		enc.Storage = a.Storage
	}
	if a.Code != nil {
		code := hexutil.Bytes(*a.Code)
		enc.Code = &code
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Account) UnmarshalJSON(input []byte) error {
	var dec accountJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*a = Account{
		Balance: new(uint256.Int),
		Nonce:   new(uint256.Int),
		Storage: dec.Storage,
	}
	if dec.Balance != nil {
		a.Balance = dec.Balance.Uint256()
	}
	if dec.Nonce != nil {
		a.Nonce = dec.Nonce.Uint256()
	}
	if dec.Code != nil {
		code := []byte(*dec.Code)
		a.Code = &code
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Account) UnmarshalYAML(value *yaml.Node) error {
	var dec accountYAML
	if err := value.Decode(&dec); err != nil {
		return err
	}
	*a = Account{
		Balance: new(uint256.Int),
		Nonce:   new(uint256.Int),
	}
	if dec.Balance != nil {
		a.Balance = dec.Balance.Uint256()
	}
	if dec.Nonce != nil {
		a.Nonce = dec.Nonce.Uint256()
	}
	if len(dec.Storage) > 0 {
		a.Storage = make(map[ledger.Bytes32]ledger.Bytes32, len(dec.Storage))
		for k, v := range dec.Storage {
			key, err := ledger.ParseBytes32(k)
			if err != nil {
				return fmt.Errorf("line %d: storage key %q: %w", value.Line, k, err)
			}
			val, err := ledger.ParseBytes32(v)
			if err != nil {
				return fmt.Errorf("line %d: storage value %q: %w", value.Line, v, err)
			}
			a.Storage[key] = val
		}
	}
	if dec.Code != nil {
		code, err := hexutil.Decode(*dec.Code)
		if err != nil {
			return fmt.Errorf("line %d: code: %w", value.Line, err)
		}
		a.Code = &code
	}
	return nil
}

// String implements fmt.Stringer.
func (a Account) String() string {
	code := "unknown"
	if a.Code != nil {
		code = fmt.Sprintf("%d bytes #%v", len(*a.Code), ledger.Keccak256(*a.Code).AbbrevString())
	}
	return fmt.Sprintf("(bal=%v; nonce=%v; code=%s; storage=%d items)", orZero(a.Balance), orZero(a.Nonce), code, len(a.Storage))
}

func orZero(i *uint256.Int) *uint256.Int {
	if i == nil {
		return new(uint256.Int)
	}
	return i
}

// State is an address keyed set of accounts.
type State map[ledger.Address]Account

// Addresses returns the addresses of s in ascending order.
func (s State) Addresses() []ledger.Address {
	addrs := make([]ledger.Address, 0, len(s))
	for addr := range s {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b ledger.Address) int { return a.Compare(b) })
	return addrs
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *State) UnmarshalYAML(value *yaml.Node) error {
	var dec map[string]Account
	if err := value.Decode(&dec); err != nil {
		return err
	}
	state := make(State, len(dec))
	for k, acc := range dec {
		addr, err := ledger.ParseAddress(k)
		if err != nil {
			return fmt.Errorf("address %q: %w", k, err)
		}
		state[*addr] = acc
	}
	*s = state
	return nil
}
