// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import "context"

// # User Data Access

// Directory defines the data access contract for user accounts. It is the
// narrow collaborator interface over the external store; tests substitute an
// in-memory fake.
type Directory interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string (case-sensitive)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent, or retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent, or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Insert persists a brand-new user account and returns the identifier
		assigned by the storage layer. The store's unique indexes on username
		and email are the authoritative duplicate guard: a lost
		check-then-insert race surfaces as a Conflict error here.

		Parameters:
		  - context: context.Context
		  - user: *User (ID left empty; filled on return)

		Returns:
		  - string: Assigned identifier
		  - error: Conflict on duplicates, or persistence failures
	*/
	Insert(context context.Context, user *User) (string, error)

	/*
		ListAll returns every user account. The password hash is excluded at
		the query level and is never hydrated.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts, oldest first
		  - error: Retrieval failures
	*/
	ListAll(context context.Context) ([]*User, error)
}
