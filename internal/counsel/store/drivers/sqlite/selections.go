package sqlite

import (
	"context"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
)

type selectionsRepo struct {
	db dbtx
}

func (r *selectionsRepo) ListSelections(ctx context.Context, userID int64) ([]domain.Selection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, university_id, status
		 FROM user_universities
		 WHERE user_id = ?
		 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Selection{}
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, rows.Err()
}

func (r *selectionsRepo) UpsertSelection(
	ctx context.Context,
	userID int64,
	universityID string,
	status domain.SelectionStatus,
) (domain.Selection, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO user_universities (user_id, university_id, status)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, university_id) DO UPDATE SET status = excluded.status
		 RETURNING id, user_id, university_id, status`,
		userID, universityID, string(status))
	return scanSelection(row)
}

func (r *selectionsRepo) DeleteSelection(ctx context.Context, userID int64, universityID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_universities WHERE user_id = ? AND university_id = ?`,
		userID, universityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSelection(row scanner) (domain.Selection, error) {
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
