package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, VerifyPassword(hash, "correct horse battery"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
}

func TestBurnCompareDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { BurnCompare("anything") })
}
