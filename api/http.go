// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"net/http"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func badRequest(cause error) error {
	return &httpError{cause: cause, status: http.StatusBadRequest}
}

func notFound(cause error) error {
	return &httpError{cause: cause, status: http.StatusNotFound}
}

// handlerFunc like http.HandlerFunc, but it returns an error.
// An httpError carries its own status, any other error is a 500.
type handlerFunc func(http.ResponseWriter, *http.Request) error

func wrapHandlerFunc(f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		if he, ok := err.(*httpError); ok {
			http.Error(w, he.cause.Error(), he.status)
			return
		}
		logger.Debug("request failed", "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const jsonContentType = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", jsonContentType)
	return json.NewEncoder(w).Encode(obj)
}
