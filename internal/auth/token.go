package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and validates JWT session tokens. The signing key is
// the raw bytes of the configured secret, so tokens stay verifiable across
// restarts as long as the secret is unchanged.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload.
type Claims struct {
	Role *string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports the role claim, if one was embedded at issuance.
func (c *Claims) HasRole() (string, bool) {
	if c.Role == nil {
		return "", false
	}
	return *c.Role, true
}

// Issue builds and signs a token carrying only the subject claim.
func (tm *TokenManager) Issue(subject string) (string, time.Time, error) {
	return tm.sign(subject, nil)
}

// IssueWithRole builds and signs a token carrying subject and role claims.
func (tm *TokenManager) IssueWithRole(subject, role string) (string, time.Time, error) {
	return tm.sign(subject, &role)
}

func (tm *TokenManager) sign(subject string, role *string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseClaims validates structure, signature and expiry, returning the
// decoded claims. Expiry is a strict check: a token is rejected from the
// expiry instant onward.
func (tm *TokenManager) ParseClaims(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Verify is the fail-closed validity predicate: any parse, signature,
// algorithm or expiry failure collapses to false, never an error.
func (tm *TokenManager) Verify(tokenStr string) bool {
	_, err := tm.ParseClaims(tokenStr)
	return err == nil
}

// VerifyForSubject additionally requires the embedded subject to match.
func (tm *TokenManager) VerifyForSubject(tokenStr, subject string) bool {
	claims, err := tm.ParseClaims(tokenStr)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}
