package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Email-verification tokens carry no scope claim at all,
// matching the wire contract the mail templates link to.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeEmail   = ""
)

const (
	AccessTTL  = 10 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
	EmailTTL   = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("could not validate token")
	ErrInvalidScope = errors.New("invalid scope for token")
)

type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies all token scopes with a single HMAC secret.
// The scope claim is what keeps a refresh token from passing as an
// access token, not separate keys.
type Codec struct {
	Secret []byte
}

// Issue signs a token for subject. The jti keeps two tokens issued in the
// same second from colliding, which refresh rotation depends on.
func (c *Codec) Issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

func (c *Codec) Decode(tokenStr, expectedScope string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Scope != expectedScope {
		return nil, ErrInvalidScope
	}
	return &claims, nil
}
