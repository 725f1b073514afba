package postgres

import (
	"context"
	"time"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/jackc/pgx/v5"
)

const onboardingColumns = `id, user_id,
	current_education_level, degree_major, graduation_year, gpa_or_percentage,
	intended_degree, field_of_study, target_intake_year, preferred_countries,
	budget_range_per_year, funding_plan,
	ielts_toefl_status, ielts_toefl_score, gre_gmat_status, gre_gmat_score, sop_status,
	created_at, updated_at`

type onboardingRepo struct {
	db dbtx
}

func (r *onboardingRepo) GetOnboarding(ctx context.Context, userID int64) (domain.Onboarding, error) {
	return scanOnboarding(r.db.QueryRow(ctx,
		`SELECT `+onboardingColumns+` FROM user_onboarding WHERE user_id = $1`, userID))
}

func (r *onboardingRepo) CreateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error) {
	args := append([]any{o.UserID}, answerArgs(o)...)
	args = append(args, time.Now().UTC())

	created, err := scanOnboarding(r.db.QueryRow(ctx,
		`INSERT INTO user_onboarding (user_id,
			current_education_level, degree_major, graduation_year, gpa_or_percentage,
			intended_degree, field_of_study, target_intake_year, preferred_countries,
			budget_range_per_year, funding_plan,
			ielts_toefl_status, ielts_toefl_score, gre_gmat_status, gre_gmat_score, sop_status,
			created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING `+onboardingColumns,
		args...,
	))
	if err != nil {
		return domain.Onboarding{}, mapConstraint(err)
	}
	return created, nil
}

func (r *onboardingRepo) UpdateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error) {
	args := answerArgs(o)
	args = append(args, time.Now().UTC(), o.UserID)

	return scanOnboarding(r.db.QueryRow(ctx,
		`UPDATE user_onboarding SET
			current_education_level = $1, degree_major = $2, graduation_year = $3, gpa_or_percentage = $4,
			intended_degree = $5, field_of_study = $6, target_intake_year = $7, preferred_countries = $8,
			budget_range_per_year = $9, funding_plan = $10,
			ielts_toefl_status = $11, ielts_toefl_score = $12, gre_gmat_status = $13, gre_gmat_score = $14,
			sop_status = $15, updated_at = $16
		 WHERE user_id = $17
		 RETURNING `+onboardingColumns,
		args...,
	))
}

// answerArgs lists the questionnaire answers in column order. pgx encodes
// nil pointers as NULL.
func answerArgs(o domain.Onboarding) []any {
	return []any{
		o.CurrentEducationLevel, o.DegreeMajor, o.GraduationYear, o.GPAOrPercentage,
		o.IntendedDegree, o.FieldOfStudy, o.TargetIntakeYear, o.PreferredCountries,
		o.BudgetRangePerYear, o.FundingPlan,
		o.IELTSTOEFLStatus, o.IELTSTOEFLScore, o.GREGMATStatus, o.GREGMATScore, o.SOPStatus,
	}
}

func scanOnboarding(row pgx.Row) (domain.Onboarding, error) {
	var o domain.Onboarding
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.CurrentEducationLevel, &o.DegreeMajor, &o.GraduationYear, &o.GPAOrPercentage,
		&o.IntendedDegree, &o.FieldOfStudy, &o.TargetIntakeYear, &o.PreferredCountries,
		&o.BudgetRangePerYear, &o.FundingPlan,
		&o.IELTSTOEFLStatus, &o.IELTSTOEFLScore, &o.GREGMATStatus, &o.GREGMATScore, &o.SOPStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Onboarding{}, mapNotFound(err)
	}
	return o, nil
}
