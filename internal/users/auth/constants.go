// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

// # Client-Facing Messages
//
// These strings are part of the observable contract. The login rejection is
// deliberately identical for an unknown username and a wrong password, to
// avoid username enumeration.
const (
	MsgUsernameTaken      = "Username already exists"
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid username or password"
	MsgRegistered         = "User registered successfully"
	MsgLoggedIn           = "Login successful"

	// Field-level rejections on registration and login input.
	MsgUsernameRequired = "Username is required"
	MsgEmailInvalid     = "A valid email address is required"
	MsgPasswordRequired = "Password is required"

	// Safe stand-ins for storage failures. Raw error text never leaves the
	// service; the cause goes to the structured log only.
	MsgRegistrationStorage = "Registration failed due to a storage error"
	MsgLoginStorage        = "Login failed due to a storage error"

	// Guard rejections. Missing credentials are distinguished from an
	// invalid token; expired, malformed, and forged tokens are not
	// distinguished from each other.
	MsgMissingCredentials = "Missing credentials"
	MsgInvalidToken       = "Invalid or expired token"
)
