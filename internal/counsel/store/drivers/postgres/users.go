package postgres

import (
	"context"
	"time"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, hashed_password, coalesce(full_name, ''), is_active, is_onboarded, created_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var fullName *string
	if u.FullName != "" {
		fullName = &u.FullName
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password, full_name, is_active, is_onboarded, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Email, u.HashedPassword, fullName, u.IsActive, u.IsOnboarded, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *usersRepo) MarkOnboarded(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_onboarded = TRUE WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.IsOnboarded, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
