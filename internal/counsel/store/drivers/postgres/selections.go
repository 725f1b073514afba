package postgres

import (
	"context"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/jackc/pgx/v5"
)

type selectionsRepo struct {
	db dbtx
}

func (r *selectionsRepo) ListSelections(ctx context.Context, userID int64) ([]domain.Selection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, university_id, status
		 FROM user_universities
		 WHERE user_id = $1
		 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Selection, error) {
		return scanSelection(row)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Selection{}
	}
	return out, nil
}

func (r *selectionsRepo) UpsertSelection(
	ctx context.Context,
	userID int64,
	universityID string,
	status domain.SelectionStatus,
) (domain.Selection, error) {
	return scanSelection(r.db.QueryRow(ctx,
		`INSERT INTO user_universities (user_id, university_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, university_id) DO UPDATE SET status = excluded.status
		 RETURNING id, user_id, university_id, status`,
		userID, universityID, string(status)))
}

func (r *selectionsRepo) DeleteSelection(ctx context.Context, userID int64, universityID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_universities WHERE user_id = $1 AND university_id = $2`,
		userID, universityID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanSelection(row pgx.Row) (domain.Selection, error) {
	var (
		sel    domain.Selection
		status string
	)
	if err := row.Scan(&sel.ID, &sel.UserID, &sel.UniversityID, &status); err != nil {
		return domain.Selection{}, mapNotFound(err)
	}
	sel.Status = domain.SelectionStatus(status)
	return sel, nil
}
