// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
its original plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The stored value must never be the plaintext.
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, CheckPasswordHash("pw123", hash))
	assert.False(t, CheckPasswordHash("pw124", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies that hashing is non-deterministic (salted):
two hashes of the same input differ but both verify.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)

	second, err := HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("same-input", first))
	assert.True(t, CheckPasswordHash("same-input", second))
}

/*
TestCheckPasswordHash_Malformed verifies that a malformed stored hash signals
false instead of panicking or erroring.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	assert.False(t, CheckPasswordHash("pw123", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("pw123", ""))
}
