package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the token.
const (
	RoleUser   = "USER"
	RoleBarber = "BARBER"
)

var (
	ErrInvalidToken  = errors.New("auth: invalid token")
	ErrSecretMissing = errors.New("auth: JWT_SECRET not configured")
)

// Claims are the JWT claims; Subject holds the account id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the verified caller.
type Principal struct {
	SubjectID uint
	Role      string
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the account.
func (t *TokenIssuer) Issue(subjectID uint, role string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrSecretMissing
	}
	now := t.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses tokenString and returns the principal it names.
func (t *TokenIssuer) Verify(tokenString string) (*Principal, error) {
	if len(t.secret) == 0 {
		return nil, ErrSecretMissing
	}
	claims := &Claims{}
	keyFunc := func(*jwt.Token) (interface{}, error) { return t.secret, nil }
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	if claims.Role != RoleUser && claims.Role != RoleBarber {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return &Principal{SubjectID: uint(id), Role: claims.Role}, nil
}
