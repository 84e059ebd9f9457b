// Package jwt handles bearer credential minting and validation. Tokens are
// HS256-signed with the subject claim carrying the user identifier and a
// fixed validity window.
package jwt

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenError represents token related errors.
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	// DefaultAccessTokenExpire is the bearer credential validity window.
	DefaultAccessTokenExpire = 30 * 24 * time.Hour

	ErrNeedSigningKey = TokenError("cannot sign token without signing key")
	ErrInvalidToken   = TokenError("invalid token")
)

// TokenManager signs and validates bearer credentials.
type TokenManager struct {
	key    string
	expiry time.Duration
}

// NewTokenManager creates a TokenManager. A zero expiry falls back to the
// default validity window.
func NewTokenManager(key string, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = DefaultAccessTokenExpire
	}
	return &TokenManager{key: key, expiry: expiry}
}

// GenerateAccessToken mints a signed token whose subject is the given user
// identifier.
func (tm *TokenManager) GenerateAccessToken(subject string) (string, error) {
	if tm.key == "" {
		return "", ErrNeedSigningKey
	}

	now := time.Now()
	claims := jwtstd.MapClaims{
		"jti": gonanoid.Must(16),
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(tm.expiry).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(tm.key))
}

// DecodeToken validates the signature and expiry and returns the claims.
func (tm *TokenManager) DecodeToken(tokenString string) (map[string]any, error) {
	if tm.key == "" {
		return nil, ErrNeedSigningKey
	}

	token, err := jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		if _, ok := token.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(tm.key), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token.Claims.(jwtstd.MapClaims), nil
}

// GetSubject extracts the subject (sub) from token claims.
func GetSubject(claims map[string]any) string {
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// GetTokenID extracts the JWT ID (jti) from token claims.
func GetTokenID(claims map[string]any) string {
	if jti, ok := claims["jti"].(string); ok {
		return jti
	}
	return ""
}

// GetExpiration extracts the expiration time from token claims.
func GetExpiration(claims map[string]any) time.Time {
	if exp, ok := claims["exp"].(float64); ok && exp > 0 {
		return time.Unix(int64(exp), 0)
	}
	return time.Time{}
}
