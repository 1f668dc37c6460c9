// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pod

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// HexOrDecimal256 marshals a 256-bit unsigned integer as hex or decimal.
// It accepts JSON/YAML strings ("0x10", "16") as well as plain numbers.
type HexOrDecimal256 uint256.Int

// NewHexOrDecimal256 wraps a copy of i.
func NewHexOrDecimal256(i *uint256.Int) *HexOrDecimal256 {
	v := HexOrDecimal256(*i)
	return &v
}

// Uint256 returns a copy of the value.
func (i *HexOrDecimal256) Uint256() *uint256.Int {
	v := uint256.Int(*i)
	return &v
}

func (i *HexOrDecimal256) parse(s string) error {
	bigint, ok := math.ParseBig256(s)
	if !ok || bigint.Sign() < 0 {
		return fmt.Errorf("invalid hex or decimal integer %q", s)
	}
	v, overflow := uint256.FromBig(bigint)
	if overflow {
		return fmt.Errorf("integer %q overflows 256 bits", s)
	}
	*i = HexOrDecimal256(*v)
	return nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		var n big.Int
		if err = n.UnmarshalJSON(input); err != nil {
			return err
		}
		return i.parse(n.String())
	}
	return i.parse(hex)
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	v := uint256.Int(i)
	text, err := (*math.HexOrDecimal256)(v.ToBig()).MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected integer scalar", value.Line)
	}
	return i.parse(value.Value)
}
