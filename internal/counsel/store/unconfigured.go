package store

import (
	"context"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

// Unconfigured returns a Store whose every operation fails with
// ErrUnconfigured. It stands in for a real driver when DATABASE_URL is unset
// so callers never have to nil-check their handle.
func Unconfigured() Store { return unconfigured{} }

// IsConfigured reports whether s is backed by a real database.
func IsConfigured(s Store) bool {
	switch s.(type) {
	case nil, unconfigured:
		return false
	default:
		return true
	}
}

type unconfigured struct{}

func (unconfigured) Users() Users           { return unconfigured{} }
func (unconfigured) Onboarding() Onboarding { return unconfigured{} }
func (unconfigured) Selections() Selections { return unconfigured{} }

func (unconfigured) ApplyMigrations() error                          { return ErrUnconfigured }
func (unconfigured) Tx(context.Context) (Tx, error)                  { return nil, ErrUnconfigured }
func (unconfigured) WithTx(context.Context, func(tx Tx) error) error { return ErrUnconfigured }
func (unconfigured) Close() error                                    { return nil }
func (unconfigured) Ping(context.Context) error                      { return ErrUnconfigured }

func (unconfigured) CreateUser(context.Context, domain.User) (int64, error) {
	return 0, ErrUnconfigured
}

func (unconfigured) GetUserByID(context.Context, int64) (domain.User, error) {
	return domain.User{}, ErrUnconfigured
}

func (unconfigured) GetUserByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, ErrUnconfigured
}

func (unconfigured) MarkOnboarded(context.Context, int64) error { return ErrUnconfigured }

func (unconfigured) GetOnboarding(context.Context, int64) (domain.Onboarding, error) {
	return domain.Onboarding{}, ErrUnconfigured
}

func (unconfigured) CreateOnboarding(context.Context, domain.Onboarding) (domain.Onboarding, error) {
	return domain.Onboarding{}, ErrUnconfigured
}

func (unconfigured) UpdateOnboarding(context.Context, domain.Onboarding) (domain.Onboarding, error) {
	return domain.Onboarding{}, ErrUnconfigured
}

func (unconfigured) ListSelections(context.Context, int64) ([]domain.Selection, error) {
	return nil, ErrUnconfigured
}

func (unconfigured) UpsertSelection(
	context.Context,
	int64,
	string,
	domain.SelectionStatus,
) (domain.Selection, error) {
	return domain.Selection{}, ErrUnconfigured
}

func (unconfigured) DeleteSelection(context.Context, int64, string) (bool, error) {
	return false, ErrUnconfigured
}
