// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package apperr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamqnam/bodylog/internal/platform/apperr"
)

/*
TestConstructors verifies that every constructor carries its wire-level
error code and HTTP status.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		code       string
		httpStatus int
	}{
		{"not_found", apperr.NotFound("User"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"conflict", apperr.Conflict("dup"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unavailable", apperr.ServiceUnavailable("down"), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

/*
TestAs extracts an AppError through a wrapped chain and returns nil for
foreign errors.
*/
func TestAs(t *testing.T) {
	cause := apperr.NotFound("User")
	wrapped := apperr.Internal(cause)

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, apperr.CodeInternal, extracted.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.Nil(t, apperr.As(nil))
}

/*
TestInternal_HidesCause asserts the cause never leaks into the client-safe
message but stays reachable for logging via Unwrap.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Message, "connection refused")
	assert.ErrorIs(t, err, cause)
}
