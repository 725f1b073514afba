package jwtx_test

import (
	"testing"
	"time"

	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner_IssueVerify(t *testing.T) {
	for _, alg := range []string{"", "HS256", "HS384", "HS512"} {
		t.Run("alg "+alg, func(t *testing.T) {
			s, err := jwtx.NewSessionSigner(alg, []byte("secret-key"))
			require.NoError(t, err)

			tok, err := s.Issue(42, time.Minute)
			require.NoError(t, err)

			claims, err := s.Verify(tok)
			require.NoError(t, err)
			id, err := claims.UserID()
			require.NoError(t, err)
			require.Equal(t, int64(42), id)
			require.NotEmpty(t, claims.ID)
		})
	}
}

func TestNewSessionSigner_Rejects(t *testing.T) {
	_, err := jwtx.NewSessionSigner("RS256", []byte("k"))
	require.Error(t, err)

	_, err = jwtx.NewSessionSigner("HS256", nil)
	require.Error(t, err)
}

func TestSessionSigner_Expired(t *testing.T) {
	s, err := jwtx.NewSessionSigner("HS256", []byte("secret-key"))
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(7, time.Minute, time.Now().Add(-time.Hour))
	tok, err := s.Sign(claims)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestSessionSigner_WrongKey(t *testing.T) {
	a, _ := jwtx.NewSessionSigner("HS256", []byte("key-a"))
	b, _ := jwtx.NewSessionSigner("HS256", []byte("key-b"))

	tok, err := a.Issue(1, time.Minute)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestSessionSigner_AlgorithmPinned(t *testing.T) {
	s256, _ := jwtx.NewSessionSigner("HS256", []byte("same"))
	s512, _ := jwtx.NewSessionSigner("HS512", []byte("same"))

	tok, err := s512.Issue(1, time.Minute)
	require.NoError(t, err)

	_, err = s256.Verify(tok)
	require.Error(t, err)
}

func TestSessionSigner_NonNumericSubject(t *testing.T) {
	s, _ := jwtx.NewSessionSigner("HS256", []byte("secret-key"))

	claims := jwtx.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := s.Sign(claims)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestSessionSigner_Garbage(t *testing.T) {
	s, _ := jwtx.NewSessionSigner("HS256", []byte("secret-key"))

	_, err := s.Verify("not-a-token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
