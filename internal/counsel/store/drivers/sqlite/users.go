package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

const userColumns = `id, email, hashed_password, full_name, is_active, is_onboarded, created_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, hashed_password, full_name, is_active, is_onboarded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		u.Email, u.HashedPassword, mapStringNull(u.FullName), u.IsActive, u.IsOnboarded, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) MarkOnboarded(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_onboarded = 1 WHERE id = ?`, id)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		fullName sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &fullName, &u.IsActive, &u.IsOnboarded, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.FullName = mapNullString(fullName)
	return u, nil
}
