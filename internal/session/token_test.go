package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := MintToken(secret, "sid-123", time.Hour, time.Now())
	require.NoError(t, err)

	sid, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", sid)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := MintToken([]byte("secret-a"), "sid-123", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := MintToken(secret, "sid-123", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("test-secret"), "not.a.token")
	assert.Error(t, err)
}
