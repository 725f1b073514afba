package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSigner issues and verifies HMAC-signed session tokens with a single
// symmetric key.
type SessionSigner struct {
	method *jwt.SigningMethodHMAC
	key    []byte
	now    func() time.Time
}

// NewSessionSigner accepts HS256, HS384 or HS512. The key must be non-empty.
func NewSessionSigner(alg string, key []byte) (*SessionSigner, error) {
	var method *jwt.SigningMethodHMAC
	switch alg {
	case "", jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("jwtx: unsupported session algorithm %q", alg)
	}
	if len(key) == 0 {
		return nil, errors.New("jwtx: session signing key is empty")
	}
	return &SessionSigner{method: method, key: key, now: time.Now}, nil
}

func (s *SessionSigner) Alg() string { return s.method.Alg() }

// Issue signs a session token for userID that expires after ttl.
func (s *SessionSigner) Issue(userID int64, ttl time.Duration) (string, error) {
	claims := NewSessionClaims(userID, ttl, s.now().UTC())
	return s.Sign(claims)
}

func (s *SessionSigner) Sign(claims SessionClaims) (string, error) {
	return jwt.NewWithClaims(s.method, claims).SignedString(s.key)
}

// Verify checks the signature, algorithm and expiry of a session token.
func (s *SessionSigner) Verify(tokenStr string) (SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(DefaultLeeway),
		jwt.WithTimeFunc(s.now),
	)

	var claims SessionClaims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return SessionClaims{}, mapParseError(err)
	}
	if !token.Valid {
		return SessionClaims{}, ErrInvalidClaim
	}
	if _, err := claims.UserID(); err != nil {
		return SessionClaims{}, err
	}
	return claims, nil
}
