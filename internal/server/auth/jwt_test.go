package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/models"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	user := models.Identity{UID: "guest-123", DisplayName: "ضيف"}

	tok, err := GenerateToken(user, secret, time.Hour)
	require.NoError(t, err)

	got, err := IdentityFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, user.UID, got.UID)
	assert.Equal(t, user.DisplayName, got.DisplayName)
}

func TestIdentityFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(models.Identity{UID: "u1"}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = IdentityFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestIdentityFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(models.Identity{UID: "u1"}, []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = IdentityFromToken(tok, []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIdentityFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := IdentityFromToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
