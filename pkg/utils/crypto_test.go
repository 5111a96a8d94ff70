package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecrypt(t *testing.T) {
	encrypted, err := Encrypt([]byte("platform-access-token"), []byte(testKey))
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "platform-access-token")

	decrypted, err := Decrypt(encrypted, []byte(testKey))
	require.NoError(t, err)
	assert.Equal(t, "platform-access-token", decrypted)

	// Wrong key must not decrypt.
	_, err = Decrypt(encrypted, []byte("ffffffffffffffffffffffffffffffff"))
	assert.Error(t, err)
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, err := Encrypt([]byte("same"), []byte(testKey))
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), []byte(testKey))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "42", "7", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.OperatorID)
	assert.Equal(t, "7", claims.DealershipID)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateToken("secret", "42", "7", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("secret", token)
	assert.Error(t, err)
}
