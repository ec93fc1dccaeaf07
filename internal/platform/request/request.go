// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/validate"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields and trailing data are rejected so a misspelled field never
silently becomes a zero value.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredParam retrieves a named URL parameter and fails when it is empty.
*/
func RequiredParam(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	if value == "" {
		return "", validate.RequiredError(name, "This path parameter is required")
	}
	return value, nil
}

/*
RequiredIdentity returns the caller set by the authentication gate.

Handlers mounted behind the gate always have one; a nil identity there means
the router was wired incorrectly, so it is reported as a missing token rather
than served anonymously.
*/
func RequiredIdentity(request *http.Request) (*identity.RequestIdentity, error) {
	id := ctxutil.GetIdentity(request.Context())
	if id == nil {
		return nil, apperr.MissingToken()
	}
	return id, nil
}
