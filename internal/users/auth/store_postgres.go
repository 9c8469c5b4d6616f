// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamqnam/bodylog/internal/platform/apperr"
	"github.com/phamqnam/bodylog/internal/platform/dberr"
	"github.com/phamqnam/bodylog/pkg/uuidv7"
)

// # Postgres Directory

// PostgresDirectory implements the [Directory] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] values so no storage detail leaks upward.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates the PostgreSQL implementation of [Directory].
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

/*
Insert persists a new user record into the users.account table.

Description: The identifier is assigned here, in the storage layer (UUIDv7,
time-sortable for index friendliness). A unique-index violation on username or
email comes back as a Conflict error.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist, ID empty)

Returns:
  - string: Assigned identifier
  - error: Conflict on duplicates, or connectivity errors
*/
func (directory *PostgresDirectory) Insert(context context.Context, user *User) (string, error) {
	const query = `
		INSERT INTO users.account (id, username, email, passwordhash, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	id := uuidv7.New()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := directory.pool.Exec(context, query,
		id,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		return "", dberr.Wrap(err, "insert_user")
	}

	user.ID = id
	return id, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (directory *PostgresDirectory) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, createdat
		FROM users.account
		WHERE username = $1`

	user := &User{}
	err := directory.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_directory_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (directory *PostgresDirectory) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, createdat
		FROM users.account
		WHERE email = $1`

	user := &User{}
	err := directory.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_directory_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
ListAll returns all user accounts, oldest first.

Description: The passwordhash column is not part of the projection, so the
hash can never reach a listing response by construction.

Parameters:
  - context: context.Context

Returns:
  - []*User: All accounts
  - error: Retrieval failures
*/
func (directory *PostgresDirectory) ListAll(context context.Context) ([]*User, error) {
	const query = `
		SELECT id, username, email, createdat
		FROM users.account
		ORDER BY createdat ASC`

	rows, err := directory.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_users")
	}

	return users, nil
}
