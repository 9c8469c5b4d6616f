// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamqnam/bodylog/internal/platform/apperr"
	"github.com/phamqnam/bodylog/internal/platform/dberr"
	"github.com/phamqnam/bodylog/internal/platform/sec"
)

// fakeDirectory is an in-memory Directory with injectable failures.
type fakeDirectory struct {
	mu        sync.Mutex
	users     []*User
	lookupErr error
	insertErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{}
}

func (directory *fakeDirectory) FindByUsername(_ context.Context, username string) (*User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()
	if directory.lookupErr != nil {
		return nil, directory.lookupErr
	}
	for _, user := range directory.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (directory *fakeDirectory) FindByEmail(_ context.Context, email string) (*User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()
	if directory.lookupErr != nil {
		return nil, directory.lookupErr
	}
	for _, user := range directory.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (directory *fakeDirectory) Insert(_ context.Context, user *User) (string, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()
	if directory.insertErr != nil {
		return "", directory.insertErr
	}
	for _, existing := range directory.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return "", apperr.Conflict("Resource already exists")
		}
	}
	user.ID = "user-" + strconv.Itoa(len(directory.users)+1)
	user.CreatedAt = time.Now().UTC()
	directory.users = append(directory.users, user)
	return user.ID, nil
}

func (directory *fakeDirectory) ListAll(_ context.Context) ([]*User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()
	if directory.lookupErr != nil {
		return nil, directory.lookupErr
	}
	out := make([]*User, 0, len(directory.users))
	for _, user := range directory.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

// staticTokens issues a fixed token so service tests don't depend on signing.
type staticTokens struct {
	token string
	err   error
}

func (tokens staticTokens) Issue(string, time.Duration) (string, error) {
	return tokens.token, tokens.err
}

func newTestService(directory Directory) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(directory, staticTokens{token: "issued-token"}, logger)
}

func TestService_Register_Success(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	result, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, MsgRegistered, result.Message)
	assert.Equal(t, "issued-token", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.User.ID)

	stored, err := directory.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("s3cret", stored.PasswordHash))
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	_, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	result, err := service.Register(context.Background(), "alice", "other@example.com", "s3cret")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, MsgUsernameTaken, result.Message)
	assert.Empty(t, result.Token)
	assert.Nil(t, result.User)

	users, err := directory.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	_, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	result, err := service.Register(context.Background(), "bob", "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, MsgEmailTaken, result.Message)
}

func TestService_Register_InsertConflictRace(t *testing.T) {
	// Lookups see nothing, but the insert hits a unique index, as when two
	// registrations of the same identity interleave. The message must name
	// the identity whose constraint actually fired.
	tests := []struct {
		name       string
		constraint string
		message    string
	}{
		{name: "username index", constraint: "account_username_key", message: MsgUsernameTaken},
		{name: "email index", constraint: "account_email_key", message: MsgEmailTaken},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			directory := newFakeDirectory()
			directory.insertErr = dberr.Wrap(&pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: testCase.constraint,
			}, "insert_user")
			service := newTestService(directory)

			result, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, testCase.message, result.Message)
		})
	}
}

func TestService_Register_StorageFailure(t *testing.T) {
	directory := newFakeDirectory()
	directory.lookupErr = errors.New("connection refused")
	service := newTestService(directory)

	result, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, MsgRegistrationStorage, result.Message)
	assert.NotContains(t, result.Message, "connection refused")
}

func TestService_Login_Success(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	_, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	result, err := service.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, MsgLoggedIn, result.Message)
	assert.Equal(t, "issued-token", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)
}

func TestService_Login_BadCredentialsAreIndistinguishable(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	_, err := service.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	unknownUser, err := service.Login(context.Background(), "mallory", "s3cret")
	require.NoError(t, err)
	wrongPassword, err := service.Login(context.Background(), "alice", "wrong")
	require.NoError(t, err)

	assert.False(t, unknownUser.Success)
	assert.False(t, wrongPassword.Success)
	assert.Equal(t, unknownUser.Message, wrongPassword.Message)
	assert.Equal(t, MsgInvalidCredentials, unknownUser.Message)
}

func TestService_Login_StorageFailure(t *testing.T) {
	directory := newFakeDirectory()
	directory.lookupErr = errors.New("connection refused")
	service := newTestService(directory)

	result, err := service.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, MsgLoginStorage, result.Message)
}

func TestService_ListUsers(t *testing.T) {
	directory := newFakeDirectory()
	service := newTestService(directory)

	for _, name := range []string{"alice", "bob"} {
		_, err := service.Register(context.Background(), name, name+"@example.com", "s3cret")
		require.NoError(t, err)
	}

	views, err := service.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "bob", views[1].Username)
}
