package store

import (
	"context"
	"testing"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/stretchr/testify/require"
)

func TestUnconfigured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Unconfigured()

	require.False(t, IsConfigured(s))
	require.False(t, IsConfigured(nil))

	_, err := s.Users().GetUserByID(ctx, 1)
	require.ErrorIs(t, err, ErrUnconfigured)

	_, err = s.Onboarding().GetOnboarding(ctx, 1)
	require.ErrorIs(t, err, ErrUnconfigured)

	_, err = s.Selections().UpsertSelection(ctx, 1, "usa-1", domain.StatusLocked)
	require.ErrorIs(t, err, ErrUnconfigured)

	err = s.WithTx(ctx, func(Tx) error {
		t.Fatal("fn must not run without a database")
		return nil
	})
	require.ErrorIs(t, err, ErrUnconfigured)

	require.ErrorIs(t, s.Ping(ctx), ErrUnconfigured)
	require.NoError(t, s.Close())
}
