package auth

import (
	"time"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a session token: the registered subject,
// issued-at and expiry claims plus the user's admin flag.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin"`
}

// Authority mints and validates session tokens. The signing secret and the
// token validity are fixed at construction and safe to share across
// concurrent callers.
type Authority struct {
	secret   []byte
	validity time.Duration
}

func NewAuthority(secret []byte, validity time.Duration) *Authority {
	return &Authority{secret: secret, validity: validity}
}

// Validity returns the configured token lifetime.
func (a *Authority) Validity() time.Duration {
	return a.validity
}

// IssueToken signs an HS256 token for the subject. Expiry is always
// issued-at plus the configured validity; including iat keeps two tokens for
// the same subject from colliding.
func (a *Authority) IssueToken(subject string, admin bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.validity)),
		},
		Admin: admin,
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
// Malformed input, a bad signature, and an elapsed expiry all collapse to
// common.ErrInvalidToken; callers never learn which check failed.
func (a *Authority) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
