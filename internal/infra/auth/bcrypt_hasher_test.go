package auth

import (
	"strings"
	"testing"

	"toolbox/config"
	"toolbox/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Tools: &config.ToolsConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongPass123!", hash)

	ok, err := hasher.Verify("StrongPass123!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("WrongPass123!", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	info, err := hasher.Inspect(hash)
	require.NoError(t, err)
	assert.Equal(t, service.HashInfo{Algorithm: "bcrypt", Cost: bcrypt.MinCost}, info)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	ok, err := hasher.Verify("x", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.ErrorIs(t, err, service.ErrMalformedHash)

	_, err = hasher.Inspect("$2a$xx")
	require.ErrorIs(t, err, service.ErrMalformedHash)
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Tools: &config.ToolsConfig{BcryptCost: 99}})

	hash, err := hasher.Hash("x")
	require.NoError(t, err)

	info, err := hasher.Inspect(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, info.Cost)
}

func TestBcryptHasher_RejectsOverlongInput(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	_, err := hasher.Hash(strings.Repeat("a", 73))

	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
