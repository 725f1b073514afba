package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/cryptox"
	"github.com/globalgrad/counsellor/pkg/jwtx"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return &UserService{Store: newTestStore(t), Hasher: cryptox.NewPasswordHasher("")}
}

func TestSignupLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "ada@example.com", "s3cret", " Ada ")
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "Ada", u.FullName)
	require.True(t, u.IsActive)
	require.False(t, u.IsOnboarded)
	require.NotEqual(t, "s3cret", u.HashedPassword)

	got, err := svc.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignup_Validation(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ada@example.com", "pw", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"duplicate", "ada@example.com", "pw", ErrEmailTaken},
		{"not an email", "ada", "pw", ErrInvalidEmail},
		{"display name form", "Ada <ada2@example.com>", "pw", ErrInvalidEmail},
		{"empty password", "bob@example.com", "", ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.email, tt.password, "")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_LegacyBcrypt(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	// Accounts migrated from the previous deployment carry bcrypt hashes of
	// the sha256-prehashed password.
	legacy, err := bcrypt.GenerateFromPassword([]byte(cryptox.Prehash("legacy-pw")), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = svc.Store.Users().CreateUser(ctx, domain.User{
		Email:          "old@example.com",
		HashedPassword: string(legacy),
		IsActive:       true,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "old@example.com", "legacy-pw")
	require.NoError(t, err)
}

func TestLogin_Inactive(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	hash, err := svc.Hasher.Hash("pw")
	require.NoError(t, err)
	id, err := svc.Store.Users().CreateUser(ctx, domain.User{Email: "off@example.com", HashedPassword: hash})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "off@example.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, id)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "me@example.com", "pw", "Me")
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = svc.Authenticate(ctx, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGoogleLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.GoogleLogin(ctx, "cred")
	require.ErrorIs(t, err, ErrGoogleDisabled)

	svc.Google = fakeGoogle{claims: jwtx.GoogleClaims{Email: "g@example.com", Name: "Gee"}}

	first, err := svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)
	require.Equal(t, "Gee", first.FullName)

	again, err := svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	// The generated password is not guessable: empty password login fails.
	_, err = svc.Login(ctx, "g@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	svc.Google = fakeGoogle{err: jwtx.ErrAudience}
	_, err = svc.GoogleLogin(ctx, "cred")
	require.ErrorIs(t, err, ErrGoogleToken)
}

func TestGoogleLogin_LinksExistingAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "both@example.com", "pw", "Both")
	require.NoError(t, err)

	svc.Google = fakeGoogle{claims: jwtx.GoogleClaims{Email: "both@example.com"}}
	got, err := svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestUserService_Unconfigured(t *testing.T) {
	svc := &UserService{Store: store.Unconfigured(), Hasher: cryptox.NewPasswordHasher("")}

	_, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, store.ErrUnconfigured)
	_, err = svc.Signup(context.Background(), "a@b.c", "pw", "")
	require.ErrorIs(t, err, store.ErrUnconfigured)
}
