package jwtx

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleJWKSURL publishes the keys Google signs ID tokens with.
const GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

var ErrEmailNotVerified = errors.New("jwtx: email not verified")

// GoogleClaims is the subset of a Google ID token the service relies on.
type GoogleClaims struct {
	jwt.RegisteredClaims
	Email         string    `json:"email"`
	EmailVerified looseBool `json:"email_verified"`
	Name          string    `json:"name"`
	Picture       string    `json:"picture,omitempty"`
}

// looseBool accepts both true and "true"; older Google tokens used strings.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = looseBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b = looseBool(v)
	return nil
}

// GoogleVerifier validates Google Sign-In ID tokens server-side.
type GoogleVerifier struct {
	keys     KeyProvider
	clientID string
	now      func() time.Time
}

// NewGoogleVerifier checks tokens against keys and requires aud == clientID.
func NewGoogleVerifier(keys KeyProvider, clientID string) *GoogleVerifier {
	return &GoogleVerifier{keys: keys, clientID: clientID, now: time.Now}
}

// Verify validates signature, issuer, audience, expiry and that Google
// verified the email address.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (GoogleClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(DefaultLeeway),
		jwt.WithTimeFunc(v.now),
	)

	var claims GoogleClaims
	_, err := parser.ParseWithClaims(idToken, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid", ErrMalformed)
		}
		pub, err := v.keys.Key(ctx, kid)
		if err != nil {
			return nil, err
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("jwtx: invalid RSA key type")
		}
		return rsaPub, nil
	})
	if err != nil {
		return GoogleClaims{}, mapParseError(err)
	}

	if err := validateIssuer(claims.Issuer, googleIssuers...); err != nil {
		return GoogleClaims{}, err
	}
	if err := validateAudience(claims.Audience, v.clientID); err != nil {
		return GoogleClaims{}, err
	}
	if claims.Email == "" || !bool(claims.EmailVerified) {
		return GoogleClaims{}, ErrEmailNotVerified
	}
	return claims, nil
}
