package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
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
	row := r.db.QueryRowContext(ctx,
		`SELECT `+onboardingColumns+` FROM user_onboarding WHERE user_id = ?`, userID)
	return scanOnboarding(row)
}

func (r *onboardingRepo) CreateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error) {
	args := append([]any{o.UserID}, answerArgs(o)...)
	args = append(args, time.Now().UTC())

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO user_onboarding (user_id,
			current_education_level, degree_major, graduation_year, gpa_or_percentage,
			intended_degree, field_of_study, target_intake_year, preferred_countries,
			budget_range_per_year, funding_plan,
			ielts_toefl_status, ielts_toefl_score, gre_gmat_status, gre_gmat_score, sop_status,
			created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+onboardingColumns,
		args...,
	)
	created, err := scanOnboarding(row)
	if err != nil {
		return domain.Onboarding{}, mapConstraint(err)
	}
	return created, nil
}

func (r *onboardingRepo) UpdateOnboarding(ctx context.Context, o domain.Onboarding) (domain.Onboarding, error) {
	args := answerArgs(o)
	args = append(args, time.Now().UTC(), o.UserID)

	row := r.db.QueryRowContext(ctx,
		`UPDATE user_onboarding SET
			current_education_level = ?, degree_major = ?, graduation_year = ?, gpa_or_percentage = ?,
			intended_degree = ?, field_of_study = ?, target_intake_year = ?, preferred_countries = ?,
			budget_range_per_year = ?, funding_plan = ?,
			ielts_toefl_status = ?, ielts_toefl_score = ?, gre_gmat_status = ?, gre_gmat_score = ?, sop_status = ?,
			updated_at = ?
		 WHERE user_id = ?
		 RETURNING `+onboardingColumns,
		args...,
	)
	return scanOnboarding(row)
}

// answerArgs lists the questionnaire answers in column order.
func answerArgs(o domain.Onboarding) []any {
	return []any{
		mapOptionalString(o.CurrentEducationLevel),
		mapOptionalString(o.DegreeMajor),
		mapOptionalInt(o.GraduationYear),
		mapOptionalString(o.GPAOrPercentage),
		mapOptionalString(o.IntendedDegree),
		mapOptionalString(o.FieldOfStudy),
		mapOptionalInt(o.TargetIntakeYear),
		mapOptionalString(o.PreferredCountries),
		mapOptionalString(o.BudgetRangePerYear),
		mapOptionalString(o.FundingPlan),
		mapOptionalString(o.IELTSTOEFLStatus),
		mapOptionalString(o.IELTSTOEFLScore),
		mapOptionalString(o.GREGMATStatus),
		mapOptionalString(o.GREGMATScore),
		mapOptionalString(o.SOPStatus),
	}
}

func scanOnboarding(row *sql.Row) (domain.Onboarding, error) {
	var (
		o                                                 domain.Onboarding
		educationLevel, major, gpa                        sql.NullString
		intendedDegree, field, countries                  sql.NullString
		budget, funding                                   sql.NullString
		ieltsStatus, ieltsScore, greStatus, greScore, sop sql.NullString
		graduationYear, intakeYear                        sql.NullInt64
		updatedAt                                         sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.UserID,
		&educationLevel, &major, &graduationYear, &gpa,
		&intendedDegree, &field, &intakeYear, &countries,
		&budget, &funding,
		&ieltsStatus, &ieltsScore, &greStatus, &greScore, &sop,
		&o.CreatedAt, &updatedAt,
	)
	if err != nil {
		return domain.Onboarding{}, mapNotFound(err)
	}

	o.CurrentEducationLevel = mapNullStringPtr(educationLevel)
	o.DegreeMajor = mapNullStringPtr(major)
	o.GraduationYear = mapNullIntPtr(graduationYear)
	o.GPAOrPercentage = mapNullStringPtr(gpa)
	o.IntendedDegree = mapNullStringPtr(intendedDegree)
	o.FieldOfStudy = mapNullStringPtr(field)
	o.TargetIntakeYear = mapNullIntPtr(intakeYear)
	o.PreferredCountries = mapNullStringPtr(countries)
	o.BudgetRangePerYear = mapNullStringPtr(budget)
	o.FundingPlan = mapNullStringPtr(funding)
	o.IELTSTOEFLStatus = mapNullStringPtr(ieltsStatus)
	o.IELTSTOEFLScore = mapNullStringPtr(ieltsScore)
	o.GREGMATStatus = mapNullStringPtr(greStatus)
	o.GREGMATScore = mapNullStringPtr(greScore)
	o.SOPStatus = mapNullStringPtr(sop)
	o.UpdatedAt = mapNullTimePtr(updatedAt)
	return o, nil
}
