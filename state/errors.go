// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"fmt"

	"github.com/openethcore/acctstate/ledger"
)

// InvariantError reports a broken caller contract, such as re-attaching code
// or marking a record clean while it has pending storage writes.
// It indicates a bug in the caller, not a runtime condition.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("account invariant violated: %s: %s", e.Op, e.Msg)
}

func invariant(op, format string, args ...any) error {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IsInvariantViolation returns whether err is, or wraps, an *InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// PartialCommitError is returned by CommitStorage when some storage writes
// could not be applied. The failed keys stay in the overlay.
type PartialCommitError struct {
	Keys []ledger.Bytes32
	Err  error // the first failure
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("storage commit incomplete: %d key(s) failed: %v", len(e.Keys), e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
