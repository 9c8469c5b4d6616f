// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/phamqnam/bodylog/internal/platform/apperr"
	"github.com/phamqnam/bodylog/internal/platform/constants"
	"github.com/phamqnam/bodylog/internal/platform/respond"
)

// TokenVerifier checks a bearer token and returns its subject.
// Satisfied by [sec.TokenService].
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// Guard protects routes behind bearer-token authentication. On success it
// resolves the token's subject to a full [User] through the directory, so
// downstream handlers never have to look it up again.
type Guard struct {
	tokens    TokenVerifier
	directory Directory
}

// NewGuard builds a guard from the token verifier and the user directory.
func NewGuard(tokens TokenVerifier, directory Directory) *Guard {
	return &Guard{tokens: tokens, directory: directory}
}

// RequireUser rejects requests without a valid bearer token.
//
// The two failure modes are distinguishable to the client: a request with no
// Authorization header at all gets a "missing credentials" message, while a
// malformed header, a bad signature, an expired token, or a subject with no
// matching account all collapse into the same "invalid token" message. Every
// rejection is a 401 with a WWW-Authenticate challenge.
func (guard *Guard) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := request.Header.Get(constants.HeaderAuthorization)
		if header == "" {
			guard.reject(writer, request, MsgMissingCredentials)
			return
		}

		tokenString, ok := strings.CutPrefix(header, constants.BearerScheme+" ")
		if !ok || tokenString == "" {
			guard.reject(writer, request, MsgInvalidToken)
			return
		}

		subject, err := guard.tokens.Verify(tokenString)
		if err != nil {
			guard.reject(writer, request, MsgInvalidToken)
			return
		}

		user, err := guard.directory.FindByUsername(request.Context(), subject)
		if err != nil {
			// A token for a deleted or unknown account is indistinguishable
			// from a forged one.
			guard.reject(writer, request, MsgInvalidToken)
			return
		}

		next.ServeHTTP(writer, request.WithContext(WithCurrentUser(request.Context(), user)))
	})
}

func (guard *Guard) reject(writer http.ResponseWriter, request *http.Request, message string) {
	writer.Header().Set(constants.HeaderWWWAuthenticate, constants.BearerScheme)
	respond.Error(writer, request, apperr.Unauthorized(message))
}

type currentUserKey struct{}

// WithCurrentUser stores the authenticated user on the context.
func WithCurrentUser(parent context.Context, user *User) context.Context {
	return context.WithValue(parent, currentUserKey{}, user)
}

// CurrentUser retrieves the authenticated user placed on the context by
// [Guard.RequireUser]. The boolean is false on unguarded routes.
func CurrentUser(parent context.Context) (*User, bool) {
	user, ok := parent.Value(currentUserKey{}).(*User)
	return user, ok
}
