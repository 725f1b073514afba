package domain

import "time"

// Onboarding is the questionnaire a user fills in before using the
// counsellor. Every answer is optional.
type Onboarding struct {
	ID     int64
	UserID int64

	// Academic background
	CurrentEducationLevel *string
	DegreeMajor           *string
	GraduationYear        *int
	GPAOrPercentage       *string

	// Study goal
	IntendedDegree     *string
	FieldOfStudy       *string
	TargetIntakeYear   *int
	PreferredCountries *string

	// Budget
	BudgetRangePerYear *string
	FundingPlan        *string

	// Exams and readiness
	IELTSTOEFLStatus *string
	IELTSTOEFLScore  *string
	GREGMATStatus    *string
	GREGMATScore     *string
	SOPStatus        *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// OnboardingPatch is a questionnaire submission. Keys missing from the
// request body leave the stored answer untouched on update.
type OnboardingPatch struct {
	CurrentEducationLevel Optional[string] `json:"current_education_level"`
	DegreeMajor           Optional[string] `json:"degree_major"`
	GraduationYear        Optional[int]    `json:"graduation_year"`
	GPAOrPercentage       Optional[string] `json:"gpa_or_percentage"`

	IntendedDegree     Optional[string] `json:"intended_degree"`
	FieldOfStudy       Optional[string] `json:"field_of_study"`
	TargetIntakeYear   Optional[int]    `json:"target_intake_year"`
	PreferredCountries Optional[string] `json:"preferred_countries"`

	BudgetRangePerYear Optional[string] `json:"budget_range_per_year"`
	FundingPlan        Optional[string] `json:"funding_plan"`

	IELTSTOEFLStatus Optional[string] `json:"ielts_toefl_status"`
	IELTSTOEFLScore  Optional[string] `json:"ielts_toefl_score"`
	GREGMATStatus    Optional[string] `json:"gre_gmat_status"`
	GREGMATScore     Optional[string] `json:"gre_gmat_score"`
	SOPStatus        Optional[string] `json:"sop_status"`
}

// Apply copies every present field of p onto o. Creating a row from a zero
// Onboarding therefore leaves omitted answers null.
func (o *Onboarding) Apply(p OnboardingPatch) {
	p.CurrentEducationLevel.apply(&o.CurrentEducationLevel)
	p.DegreeMajor.apply(&o.DegreeMajor)
	p.GraduationYear.apply(&o.GraduationYear)
	p.GPAOrPercentage.apply(&o.GPAOrPercentage)

	p.IntendedDegree.apply(&o.IntendedDegree)
	p.FieldOfStudy.apply(&o.FieldOfStudy)
	p.TargetIntakeYear.apply(&o.TargetIntakeYear)
	p.PreferredCountries.apply(&o.PreferredCountries)

	p.BudgetRangePerYear.apply(&o.BudgetRangePerYear)
	p.FundingPlan.apply(&o.FundingPlan)

	p.IELTSTOEFLStatus.apply(&o.IELTSTOEFLStatus)
	p.IELTSTOEFLScore.apply(&o.IELTSTOEFLScore)
	p.GREGMATStatus.apply(&o.GREGMATStatus)
	p.GREGMATScore.apply(&o.GREGMATScore)
	p.SOPStatus.apply(&o.SOPStatus)
}
