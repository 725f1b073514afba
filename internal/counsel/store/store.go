package store

import (
	"context"
	"errors"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnconfigured is returned by every operation of the handle injected
	// when no database was configured.
	ErrUnconfigured = errors.New("store: database not configured")
)

// Store is the root data access interface shared by the HTTP API and the
// voice agent. Concrete drivers (sqlite, postgres) implement it. Sub-repos are
// exposed as methods so a Tx can hand out the same repos bound to itself.
type Store interface {
	Users() Users
	Onboarding() Onboarding
	Selections() Selections

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a user and returns the id assigned by the database.
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail matches the email exactly as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// MarkOnboarded sets is_onboarded. It is idempotent.
	MarkOnboarded(ctx context.Context, id int64) error
}

type Onboarding interface {
	// GetOnboarding returns the single questionnaire row of a user.
	GetOnboarding(ctx context.Context, userID int64) (domain.Onboarding, error)

	// CreateOnboarding inserts the first row for o.UserID. A second row for the
	// same user yields ErrAlreadyExists.
	CreateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error)

	// UpdateOnboarding rewrites every answer of the user's row and bumps updated_at.
	UpdateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error)
}

type Selections interface {
	// ListSelections returns the user's selections in insertion order.
	ListSelections(ctx context.Context, userID int64) ([]domain.Selection, error)

	// UpsertSelection inserts the (user, university) pair or overwrites its
	// status in a single statement. Concurrent writers race; the last wins.
	UpsertSelection(
		ctx context.Context,
		userID int64,
		universityID string,
		status domain.SelectionStatus,
	) (domain.Selection, error)

	// DeleteSelection removes the pair and reports whether a row existed.
	DeleteSelection(ctx context.Context, userID int64, universityID string) (bool, error)
}
