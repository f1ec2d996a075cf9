package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Actor kind discriminants carried in token payloads. The kind claim is an
// explicit tagged value, never inferred from which claim keys happen to be
// present.
const (
	TokenKindUser    = "user"
	TokenKindCompany = "company"
)

// AccessClaims is the payload of a short-lived access token.
type AccessClaims struct {
	Kind          string `json:"kind"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. It deliberately carries
// nothing beyond the actor identity; everything else is re-resolved on use.
type RefreshClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateAccessJWT signs an access token for the given actor.
func GenerateAccessJWT(actorID, kind, email, role string, emailVerified bool, secret, issuer string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Kind:          kind,
		Email:         email,
		Role:          role,
		EmailVerified: emailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actorID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshJWT signs a refresh token for the given actor. Each token
// carries a unique jti so tokens minted for the same actor never collide;
// rotation depends on every stored digest being distinct.
func GenerateRefreshJWT(actorID, kind, secret, issuer string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   actorID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessJWT parses and validates an access token string, returning its
// claims. Errors include expiry and signature failures from the jwt package.
func ParseAccessJWT(tokenString, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Kind != TokenKindUser && claims.Kind != TokenKindCompany {
		return nil, errors.New("unknown actor kind in token")
	}
	return claims, nil
}

// ParseRefreshJWT parses and validates a refresh token string.
func ParseRefreshJWT(tokenString, secret string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Kind != TokenKindUser && claims.Kind != TokenKindCompany {
		return nil, errors.New("unknown actor kind in token")
	}
	return claims, nil
}
