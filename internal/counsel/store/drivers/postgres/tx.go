package postgres

import (
	"context"
	"errors"

	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/jackc/pgx/v5"
)

var errNestedTx = errors.New("postgres: nested transactions are not supported")

type txStore struct {
	tx pgx.Tx
	// ctx is the context the transaction was started with; pgx needs one for
	// Commit and Rollback but the store.Tx interface does not carry it.
	ctx context.Context
}

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback(t.ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *txStore) Onboarding() store.Onboarding { return &onboardingRepo{db: t.tx} }
func (t *txStore) Selections() store.Selections { return &selectionsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil }
