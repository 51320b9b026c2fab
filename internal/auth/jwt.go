// Package auth issues and verifies the signed identity tokens used as bearer
// credentials by every authenticated operation.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ilqareskerov/AccessDenied/internal/models"
)

// Claims carries the identity encoded in a token: the user id in the
// standard subject claim plus username and role.
type Claims struct {
	jwt.RegisteredClaims
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Identity is the verified content of a token.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
}

// GenerateToken signs an HS256 token for the given user. A zero ttl issues a
// token without an expiration claim.
func GenerateToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(user.ID, 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Username: user.Username,
		Role:     user.Role,
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses and validates tokenString and returns the identity it
// encodes.
func VerifyToken(tokenString string, secret []byte) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return &Identity{UserID: userID, Username: claims.Username, Role: claims.Role}, nil
}
