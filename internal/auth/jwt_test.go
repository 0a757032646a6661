package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/erpbase/internal/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret"}

	token, err := GenerateToken(cfg, 42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "one"}, 1, "a@b.c")
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "two"}, token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(&config.JWTConfig{Secret: "s"}, "not-a-token")
	require.Error(t, err)
}
