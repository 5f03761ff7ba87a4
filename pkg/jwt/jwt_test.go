package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.GenerateToken("reader@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", claims.Email)
}

func TestVerifyIdentity(t *testing.T) {
	manager := NewManager("identity-secret")

	t.Run("returns the verified email and name", func(t *testing.T) {
		token, err := manager.GenerateTokenWithName("reader@example.com", "Reader", time.Hour)
		require.NoError(t, err)

		email, name, err := manager.VerifyIdentity(token)
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", email)
		assert.Equal(t, "Reader", name)
	})

	t.Run("rejects a credential signed with another secret", func(t *testing.T) {
		token, err := NewManager("other-secret").GenerateTokenWithName("reader@example.com", "Reader", time.Hour)
		require.NoError(t, err)

		_, _, err = manager.VerifyIdentity(token)
		assert.Error(t, err)
	})
}

func TestValidateToken(t *testing.T) {
	manager := NewManager("test-secret")

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewManager("other-secret")
		token, err := other.GenerateToken("reader@example.com", time.Hour)
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := manager.GenerateToken("reader@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token without an email claim", func(t *testing.T) {
		token, err := manager.GenerateToken("", time.Hour)
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
