// Package auth issues and verifies the guest access tokens required before
// any write. Tokens are HS256 JWTs carrying the guest identity.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/models"
)

// Claims extends the registered claims with the guest identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	DisplayName string `json:"name,omitempty"`
}

// GenerateToken signs a token for the given identity.
func GenerateToken(user models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:      user.UID,
		DisplayName: user.DisplayName,
	})

	return token.SignedString(secretKey)
}

// IdentityFromToken parses and verifies tokenString and returns the embedded
// identity. Expired tokens report common.ErrTokenExpired, anything else
// invalid reports common.ErrInvalidToken.
func IdentityFromToken(tokenString string, secretKey []byte) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &models.Identity{UID: claims.UserID, DisplayName: claims.DisplayName}, nil
}
