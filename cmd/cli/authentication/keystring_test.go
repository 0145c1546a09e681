package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	keyring.MockInit()

	creds, err := GetTokens()
	require.NoError(t, err)
	assert.Nil(t, creds)

	require.NoError(t, StoreTokens(&StoredCredentials{AccessToken: "jwt", Username: "sam", UserID: "u1"}))

	creds, err = GetTokens()
	require.NoError(t, err)
	assert.Equal(t, "jwt", creds.AccessToken)
	assert.Equal(t, "u1", creds.UserID)

	require.NoError(t, DeleteTokens())
	require.NoError(t, DeleteTokens())
}

func TestExpired(t *testing.T) {
	now := time.Unix(1_000, 0)
	assert.False(t, (&StoredCredentials{}).Expired(now))
	assert.False(t, (&StoredCredentials{ExpiresAt: 2_000}).Expired(now))
	assert.True(t, (&StoredCredentials{ExpiresAt: 1_000}).Expired(now))
}
