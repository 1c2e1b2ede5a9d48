package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleBot   Role = "bot"   // WhatsApp botu: kayıt ve durum güncelleme
	RoleAdmin Role = "admin" // audit kayıtlarını da görebilir
)

type JWTCustomClaims struct {
	Client string `json:"client"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for an API client. ttl <= 0 means no expiry.
func GenerateToken(secret, client string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		Client: client,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  client,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBot, RoleAdmin:
		return Role(s), true
	}
	return "", false
}
