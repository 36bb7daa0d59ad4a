// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/app"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// A known path requested with an unregistered method answers 404 instead
// of chi's default 405, so callers cannot probe which routes exist. The
// path is matched with [chi.Mux.Match], which also resolves parameterised
// routes such as /api/passwords/{id}.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		http.Error(w, app.MsgNotFound, http.StatusNotFound)
	}
}
