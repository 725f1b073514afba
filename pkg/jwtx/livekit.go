package jwtx

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLiveKitTTL is how long a room-join credential stays valid.
const DefaultLiveKitTTL = time.Hour

var ErrBodyHashMismatch = errors.New("jwtx: webhook body hash mismatch")

// VideoGrant is the LiveKit "video" claim. Pointer booleans distinguish an
// explicit false from "use the server default".
type VideoGrant struct {
	RoomCreate     bool   `json:"roomCreate,omitempty"`
	RoomList       bool   `json:"roomList,omitempty"`
	RoomAdmin      bool   `json:"roomAdmin,omitempty"`
	RoomJoin       bool   `json:"roomJoin,omitempty"`
	Room           string `json:"room,omitempty"`
	CanPublish     *bool  `json:"canPublish,omitempty"`
	CanSubscribe   *bool  `json:"canSubscribe,omitempty"`
	CanPublishData *bool  `json:"canPublishData,omitempty"`
	Agent          bool   `json:"agent,omitempty"`
}

// LiveKitClaims are the claims LiveKit expects on access tokens and sends on
// webhook requests.
type LiveKitClaims struct {
	jwt.RegisteredClaims
	Name     string      `json:"name,omitempty"`
	Video    *VideoGrant `json:"video,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
	Sha256   string      `json:"sha256,omitempty"`
}

// LiveKitKeys is an API key/secret pair issued by a LiveKit deployment.
type LiveKitKeys struct {
	APIKey    string
	APISecret string
}

func (k LiveKitKeys) Configured() bool {
	return k.APIKey != "" && k.APISecret != ""
}

// Mint signs an access token for identity carrying grant.
func (k LiveKitKeys) Mint(identity, name string, grant VideoGrant, ttl time.Duration) (string, error) {
	if !k.Configured() {
		return "", errors.New("jwtx: livekit keys not configured")
	}
	now := time.Now().UTC()
	claims := LiveKitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    k.APIKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  name,
		Video: &grant,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(k.APISecret))
}

// Parse verifies a token signed with these keys and returns its claims.
func (k LiveKitKeys) Parse(tokenStr string) (LiveKitClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(DefaultLeeway),
	)

	var claims LiveKitClaims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return []byte(k.APISecret), nil
	})
	if err != nil {
		return LiveKitClaims{}, mapParseError(err)
	}
	if err := validateIssuer(claims.Issuer, k.APIKey); err != nil {
		return LiveKitClaims{}, err
	}
	return claims, nil
}

// VerifyWebhook authenticates a LiveKit webhook delivery: the Authorization
// header carries a token signed with the API secret whose sha256 claim is
// the base64 SHA-256 of the raw body.
func (k LiveKitKeys) VerifyWebhook(authHeader string, body []byte) error {
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenStr == "" {
		return fmt.Errorf("%w: missing authorization", ErrMalformed)
	}

	claims, err := k.Parse(tokenStr)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(body)
	want := base64.StdEncoding.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(claims.Sha256), []byte(want)) != 1 {
		return ErrBodyHashMismatch
	}
	return nil
}

// Bool returns a pointer to v, for VideoGrant fields.
func Bool(v bool) *bool { return &v }
