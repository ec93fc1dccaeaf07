// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package portaltest serves a single [portal.Module] with a fixed data scope,
// skipping the access pipeline. Domain handler tests use it to exercise their
// routes without building identities or role contexts.
package portaltest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Router mounts every route of module at its pattern. Handlers receive scope.
func Router(module portal.Module, scope portal.DataScope) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			caller := &identity.RequestIdentity{UserID: scope.UserID, EcosystemID: scope.EcosystemID}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), caller)))
		})
	})

	for _, route := range module.Routes() {
		handle := route.Handle
		router.Method(route.Method, route.Pattern, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			handle(writer, request, scope)
		}))
	}
	return router
}

// Do sends one request to handler. A non-nil body is encoded as JSON.
func Do(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("portaltest: encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// Envelope is the union of the success and error envelopes.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Meta    map[string]int  `json:"meta"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details map[string]any  `json:"details"`
}

// Decode parses the recorder body as an [Envelope].
func Decode(t *testing.T, recorder *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("portaltest: decode %q: %v", recorder.Body.String(), err)
	}
	return envelope
}

// Data decodes the data member of the response into target.
func Data(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	envelope := Decode(t, recorder)
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		t.Fatalf("portaltest: decode data %q: %v", envelope.Data, err)
	}
}
