// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds a state trie from a plain-data allocation and reads
// accounts back from it.
package genesis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openethcore/acctstate/log"
	"github.com/openethcore/acctstate/pod"
)

var logger = log.WithContext("pkg", "genesis")

// Load reads an address keyed allocation from a JSON or YAML file.
// The format is chosen by the file extension, JSON being the default.
func Load(path string) (pod.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}

	var alloc pod.State
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &alloc); err != nil {
			return nil, errors.Wrap(err, "decode yaml genesis")
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&alloc); err != nil {
			return nil, errors.Wrap(err, "decode json genesis")
		}
	}
	if alloc == nil {
		alloc = make(pod.State)
	}
	return alloc, nil
}
