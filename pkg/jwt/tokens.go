package jwt

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims defines the fixed JWT payload carried by access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	jwtlib.RegisteredClaims
}

// GenerateToken issues a signed HS256 token for a user. A zero or
// negative ttl omits the expiry claim entirely; revocation through the
// user's token set is then the only way to invalidate the token.
func GenerateToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:   "funcards",
			Subject:  userID,
			IssuedAt: jwtlib.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(ttl))
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the signature and registered claims, including
// expiry when present.
func Parse(token string, secret string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, keyFunc(secret),
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwtlib.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ParseAllowExpired validates the signature only. An expired but
// correctly signed token still yields its claims; the expiry embedded
// in the token is informational, not authoritative.
func ParseAllowExpired(token string, secret string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, keyFunc(secret),
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, jwtlib.ErrTokenInvalidClaims
	}
	return claims, nil
}

func keyFunc(secret string) jwtlib.Keyfunc {
	return func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}
}
