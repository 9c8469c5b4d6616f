// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via narrow interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by [TokenService.Verify] for every verification
// failure: malformed input, a signature that does not verify, or an expired
// token. Callers must not distinguish between these cases toward clients.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims is the payload embedded inside an issued bearer token.
//
// The token is self-contained: the subject (username) and absolute expiry are
// the whole state, reconstructible only by verifying the HMAC signature with
// the process-wide secret.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens using
// HS256 with a symmetric secret.
//
// # Secret Lifecycle
//
// The secret is process-wide configuration loaded once at startup. Rotating it
// invalidates all previously issued tokens, which is acceptable because no
// revocation list exists.
type TokenService struct {
	secret []byte
	issuer string

	// now is the clock used for both issuance and expiry validation.
	// Overridable in tests to simulate time passing.
	now func() time.Time
}

// NewTokenService creates a new TokenService around a shared symmetric secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue encodes {subject, expiry = now_utc + ttl} into a signed token string.
func (service *TokenService) Issue(subject string, timeToLive time.Duration) (string, error) {
	currentTime := service.now().UTC()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token string and returns the
// bound subject. No clock-skew leeway is applied: a token whose expiry equals
// the current instant is already expired.
func (service *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired())

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
