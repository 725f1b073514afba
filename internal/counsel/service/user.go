package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/cryptox"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

// IDTokenVerifier validates a Google Sign-In credential.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (jwtx.GoogleClaims, error)
}

type UserService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher

	// Google is nil when GOOGLE_CLIENT_ID is not configured.
	Google IDTokenVerifier
}

// Signup registers a password account.
func (s *UserService) Signup(ctx context.Context, email, password, fullName string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if password == "" {
		return domain.User{}, ErrEmptyPassword
	}

	// 1. Reject known emails before paying for the hash.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	// 2. Hash and insert. The unique index still catches a concurrent signup.
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user, err := s.create(ctx, email, hash, strings.TrimSpace(fullName))
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user signed up", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login checks email and password. Unknown emails, wrong passwords and
// inactive accounts are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := s.Hasher.Verify(password, user.HashedPassword); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("stored password hash unusable",
				slog.Int64("user_id", user.ID),
				slog.Any("error", err),
			)
		}
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Warn("login attempt for inactive user", slog.Int64("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GoogleLogin verifies a Google ID token and returns the matching account,
// creating one on first sign-in.
func (s *UserService) GoogleLogin(ctx context.Context, credential string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if s.Google == nil {
		return domain.User{}, ErrGoogleDisabled
	}

	claims, err := s.Google.Verify(ctx, credential)
	if err != nil {
		log.Warn("google id token rejected", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}

	email, err := normalizeEmail(claims.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrGoogleToken, err)
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.IsActive {
			return domain.User{}, ErrInactiveUser
		}
		return user, nil
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	// Google accounts get a random password nobody knows, so password login
	// stays closed until a reset flow sets one.
	unusable, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.User{}, err
	}
	hash, err := s.Hasher.Hash(unusable)
	if err != nil {
		return domain.User{}, err
	}

	user, err = s.create(ctx, email, hash, claims.Name)
	if errors.Is(err, ErrEmailTaken) {
		// Lost a race with a concurrent first login.
		return s.Store.Users().GetUserByEmail(ctx, email)
	}
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user created from google login", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate loads the user behind a verified session. Missing and
// inactive users both yield ErrUserNotFound.
func (s *UserService) Authenticate(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) create(ctx context.Context, email, hash, fullName string) (domain.User, error) {
	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:          email,
		HashedPassword: hash,
		FullName:       fullName,
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, id)
}

// normalizeEmail accepts a bare addr-spec only ("a@b.c", not "A <a@b.c>").
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}
