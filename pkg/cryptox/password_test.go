package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	h := NewPasswordHasher("test-pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"longer than bcrypt's 72 bytes", strings.Repeat("a", 200)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := NewPasswordHasher("")

	hash1, err := h.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewPasswordHasher("")
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	tests := []string{"incorrect", "Correct", "correct ", ""}
	for _, pw := range tests {
		t.Run(pw, func(t *testing.T) {
			require.ErrorIs(t, h.Verify(pw, hash), ErrPasswordMismatch)
		})
	}
}

func TestVerify_PepperMustMatch(t *testing.T) {
	hash, err := NewPasswordHasher("pepper-a").Hash("pw")
	require.NoError(t, err)

	require.NoError(t, NewPasswordHasher("pepper-a").Verify("pw", hash))
	require.ErrorIs(t, NewPasswordHasher("pepper-b").Verify("pw", hash), ErrPasswordMismatch)
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := NewPasswordHasher("")

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "password"},
		{"too few parts", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA"},
		{"wrong version", "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("pw", tt.hash)
			require.ErrorIs(t, err, ErrUnknownHashFormat)
		})
	}
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	sum := sha256.Sum256([]byte("hunter2"))
	legacy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(sum[:])), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewPasswordHasher("ignored-for-bcrypt")
	require.NoError(t, h.Verify("hunter2", string(legacy)))
	require.ErrorIs(t, h.Verify("hunter3", string(legacy)), ErrPasswordMismatch)
}

func TestLoadOrCreatePepper(t *testing.T) {
	t.Run("empty path disables pepper", func(t *testing.T) {
		p, err := LoadOrCreatePepper("")
		require.NoError(t, err)
		require.Empty(t, p)
	})

	t.Run("creates then reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "pepper")

		first, err := LoadOrCreatePepper(path)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		second, err := LoadOrCreatePepper(path)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}
