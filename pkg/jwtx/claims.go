package jwtx

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL matches ACCESS_TOKEN_EXPIRE_MINUTES when unset.
const DefaultSessionTTL = 30 * time.Minute

// SessionClaims are carried by the browser session cookie. The subject is
// the decimal user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// NewSessionClaims builds claims for userID valid for ttl from now.
func NewSessionClaims(userID int64, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a random identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// UserID parses the subject back into a user id.
func (c SessionClaims) UserID() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidClaim)
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidClaim, c.Subject)
	}
	return id, nil
}

// validateIssuer checks iss against any of the accepted values.
func validateIssuer(iss string, accepted ...string) error {
	if len(accepted) == 0 {
		return nil
	}
	if slices.Contains(accepted, iss) {
		return nil
	}
	return ErrIssuer
}

// validateAudience checks that at least one expected audience is present.
func validateAudience(aud jwt.ClaimStrings, expected string) error {
	if expected == "" {
		return nil
	}
	if slices.Contains(aud, expected) {
		return nil
	}
	return ErrAudience
}

// mapParseError folds golang-jwt's errors onto the package sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrAlgMismatch, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
