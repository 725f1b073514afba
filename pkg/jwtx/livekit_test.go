package jwtx_test

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testLiveKit = jwtx.LiveKitKeys{APIKey: "APIabc", APISecret: "livekit-secret-value"}

func TestLiveKitKeys_Mint(t *testing.T) {
	tok, err := testLiveKit.Mint("12", "Ada", jwtx.VideoGrant{
		RoomJoin:   true,
		Room:       "counsellor-12",
		CanPublish: jwtx.Bool(true),
	}, time.Hour)
	require.NoError(t, err)

	claims, err := testLiveKit.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "APIabc", claims.Issuer)
	require.Equal(t, "12", claims.Subject)
	require.Equal(t, "Ada", claims.Name)
	require.NotNil(t, claims.Video)
	require.True(t, claims.Video.RoomJoin)
	require.Equal(t, "counsellor-12", claims.Video.Room)
	require.True(t, *claims.Video.CanPublish)
	require.Nil(t, claims.Video.CanSubscribe)
}

func TestLiveKitKeys_MintUnconfigured(t *testing.T) {
	_, err := jwtx.LiveKitKeys{}.Mint("1", "", jwtx.VideoGrant{}, time.Hour)
	require.Error(t, err)
}

func webhookAuth(t *testing.T, keys jwtx.LiveKitKeys, body []byte) string {
	t.Helper()
	sum := sha256.Sum256(body)
	claims := jwtx.LiveKitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    keys.APIKey,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Sha256: base64.StdEncoding.EncodeToString(sum[:]),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(keys.APISecret))
	require.NoError(t, err)
	return s
}

func TestLiveKitKeys_VerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"participant_joined"}`)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, testLiveKit.VerifyWebhook(webhookAuth(t, testLiveKit, body), body))
	})

	t.Run("bearer prefix", func(t *testing.T) {
		require.NoError(t, testLiveKit.VerifyWebhook("Bearer "+webhookAuth(t, testLiveKit, body), body))
	})

	t.Run("tampered body", func(t *testing.T) {
		err := testLiveKit.VerifyWebhook(webhookAuth(t, testLiveKit, body), []byte(`{"event":"room_finished"}`))
		require.ErrorIs(t, err, jwtx.ErrBodyHashMismatch)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwtx.LiveKitKeys{APIKey: "APIabc", APISecret: "other"}
		err := testLiveKit.VerifyWebhook(webhookAuth(t, other, body), body)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong key id", func(t *testing.T) {
		other := jwtx.LiveKitKeys{APIKey: "APIzzz", APISecret: testLiveKit.APISecret}
		err := testLiveKit.VerifyWebhook(webhookAuth(t, other, body), body)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("missing header", func(t *testing.T) {
		require.ErrorIs(t, testLiveKit.VerifyWebhook("", body), jwtx.ErrMalformed)
	})
}
