// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"fmt"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Output formats accepted by NewHandler.
const (
	FormatTerminal = "terminal"
	FormatLogfmt   = "logfmt"
	FormatJSON     = "json"
)

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

// NewHandler builds a handler writing to wr in the given format. Records below
// level are dropped. useColor only affects the terminal format.
func NewHandler(wr io.Writer, format string, level slog.Level, useColor bool) (slog.Handler, error) {
	switch format {
	case "", FormatTerminal:
		return ethlog.NewTerminalHandlerWithLevel(wr, level, useColor), nil
	case FormatLogfmt:
		return ethlog.LogfmtHandlerWithLevel(wr, level), nil
	case FormatJSON:
		return ethlog.JSONHandlerWithLevel(wr, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
