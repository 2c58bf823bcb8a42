package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims carried by an access token. The token ID
// (jti) doubles as the session key in redis.
type AccessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}
