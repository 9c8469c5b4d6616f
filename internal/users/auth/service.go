// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/phamqnam/bodylog/internal/platform/apperr"
	"github.com/phamqnam/bodylog/internal/platform/constants"
	"github.com/phamqnam/bodylog/internal/platform/dberr"
	"github.com/phamqnam/bodylog/internal/platform/sec"
)

// TokenProvider issues signed bearer tokens for an authenticated subject.
// Satisfied by [sec.TokenService].
type TokenProvider interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// Service implements account registration and login on top of a [Directory].
//
// Both operations return an [AuthResult] for every business outcome —
// duplicate username, bad password, storage trouble — so handlers can render
// them uniformly. An error return is reserved for faults that should surface
// as a server error, such as the password hasher failing.
type Service struct {
	directory Directory
	tokens    TokenProvider
	logger    *slog.Logger
}

// NewService wires the account service with its directory and token issuer.
func NewService(directory Directory, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new account.
//
// Uniqueness is checked on username first, then email, so a request that
// collides on both reports the username. The directory insert rechecks both
// under its unique indexes, which closes the race between two concurrent
// registrations of the same name: the loser gets a conflict back and the
// caller sees the same duplicate message as if the pre-check had caught it.
//
// Parameters:
//   - context: carries cancellation and the request-scoped logger.
//   - username: desired account name, already validated non-empty.
//   - email: contact address, already validated as well-formed.
//   - password: plaintext credential, hashed before it reaches the directory.
//
// Returns:
//   - *AuthResult: outcome of the registration, including a fresh token on success.
//   - error: non-nil only for faults outside the business contract.
func (service *Service) Register(context context.Context, username, email, password string) (*AuthResult, error) {
	if _, err := service.directory.FindByUsername(context, username); err == nil {
		return &AuthResult{Success: false, Message: MsgUsernameTaken}, nil
	} else if !isNotFound(err) {
		service.logger.ErrorContext(context, "registration username lookup failed", slog.String("error", err.Error()))
		return &AuthResult{Success: false, Message: MsgRegistrationStorage}, nil
	}

	if _, err := service.directory.FindByEmail(context, email); err == nil {
		return &AuthResult{Success: false, Message: MsgEmailTaken}, nil
	} else if !isNotFound(err) {
		service.logger.ErrorContext(context, "registration email lookup failed", slog.String("error", err.Error()))
		return &AuthResult{Success: false, Message: MsgRegistrationStorage}, nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := service.directory.Insert(context, user); err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeConflict {
			// Lost the race to a concurrent registration. The violated
			// constraint tells which identity collided, so the caller sees
			// the same message the pre-check would have produced.
			if strings.Contains(dberr.ConstraintName(err), "email") {
				return &AuthResult{Success: false, Message: MsgEmailTaken}, nil
			}
			return &AuthResult{Success: false, Message: MsgUsernameTaken}, nil
		}
		service.logger.ErrorContext(context, "registration insert failed", slog.String("error", err.Error()))
		return &AuthResult{Success: false, Message: MsgRegistrationStorage}, nil
	}

	token, err := service.tokens.Issue(user.Username, constants.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Success: true,
		Message: MsgRegistered,
		User:    user.Sanitize(),
		Token:   token,
	}, nil
}

// Login authenticates a username/password pair and mints a bearer token.
//
// An unknown username and a wrong password produce the same message, so the
// response never reveals whether an account exists.
func (service *Service) Login(context context.Context, username, password string) (*AuthResult, error) {
	user, err := service.directory.FindByUsername(context, username)
	if err != nil {
		if isNotFound(err) {
			return &AuthResult{Success: false, Message: MsgInvalidCredentials}, nil
		}
		service.logger.ErrorContext(context, "login lookup failed", slog.String("error", err.Error()))
		return &AuthResult{Success: false, Message: MsgLoginStorage}, nil
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return &AuthResult{Success: false, Message: MsgInvalidCredentials}, nil
	}

	token, err := service.tokens.Issue(user.Username, constants.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Success: true,
		Message: MsgLoggedIn,
		User:    user.Sanitize(),
		Token:   token,
	}, nil
}

// ListUsers returns every registered account as a sanitized view, in
// creation order. Password hashes never leave the directory layer here.
func (service *Service) ListUsers(context context.Context) ([]*UserView, error) {
	users, err := service.directory.ListAll(context)
	if err != nil {
		return nil, err
	}

	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Sanitize())
	}
	return views, nil
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == apperr.CodeNotFound
}
