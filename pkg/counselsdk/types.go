package counselsdk

import "time"

// ============================================================================
// Auth
// ============================================================================

// User is the public view of an account.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	IsOnboarded bool      `json:"is_onboarded"`
	CreatedAt   time.Time `json:"created_at"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest carries the Google Sign-In ID token.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// LoginResponse is returned by login and google-login.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Onboarding
// ============================================================================

// OnboardingAnswers is the questionnaire. Nil fields are omitted from a
// request and so leave stored answers untouched on update.
type OnboardingAnswers struct {
	CurrentEducationLevel *string `json:"current_education_level,omitempty"`
	DegreeMajor           *string `json:"degree_major,omitempty"`
	GraduationYear        *int    `json:"graduation_year,omitempty"`
	GPAOrPercentage       *string `json:"gpa_or_percentage,omitempty"`

	IntendedDegree     *string `json:"intended_degree,omitempty"`
	FieldOfStudy       *string `json:"field_of_study,omitempty"`
	TargetIntakeYear   *int    `json:"target_intake_year,omitempty"`
	PreferredCountries *string `json:"preferred_countries,omitempty"`

	BudgetRangePerYear *string `json:"budget_range_per_year,omitempty"`
	FundingPlan        *string `json:"funding_plan,omitempty"`

	IELTSTOEFLStatus *string `json:"ielts_toefl_status,omitempty"`
	IELTSTOEFLScore  *string `json:"ielts_toefl_score,omitempty"`
	GREGMATStatus    *string `json:"gre_gmat_status,omitempty"`
	GREGMATScore     *string `json:"gre_gmat_score,omitempty"`
	SOPStatus        *string `json:"sop_status,omitempty"`
}

// Onboarding is a stored questionnaire. Unanswered fields are null.
type Onboarding struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	CurrentEducationLevel *string `json:"current_education_level"`
	DegreeMajor           *string `json:"degree_major"`
	GraduationYear        *int    `json:"graduation_year"`
	GPAOrPercentage       *string `json:"gpa_or_percentage"`

	IntendedDegree     *string `json:"intended_degree"`
	FieldOfStudy       *string `json:"field_of_study"`
	TargetIntakeYear   *int    `json:"target_intake_year"`
	PreferredCountries *string `json:"preferred_countries"`

	BudgetRangePerYear *string `json:"budget_range_per_year"`
	FundingPlan        *string `json:"funding_plan"`

	IELTSTOEFLStatus *string `json:"ielts_toefl_status"`
	IELTSTOEFLScore  *string `json:"ielts_toefl_score"`
	GREGMATStatus    *string `json:"gre_gmat_status"`
	GREGMATScore     *string `json:"gre_gmat_score"`
	SOPStatus        *string `json:"sop_status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ============================================================================
// Universities
// ============================================================================

const (
	StatusShortlisted = "shortlisted"
	StatusLocked      = "locked"
)

// Selection is one university in the user's list.
type Selection struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	UniversityID string `json:"university_id"`
	Status       string `json:"status"`
}

// SelectionRequest is the body of POST/PUT /universities. The server also
// accepts "id" in place of "university_id".
type SelectionRequest struct {
	UniversityID string `json:"university_id"`
	Status       string `json:"status"`
}

// University is an entry of the static catalog.
type University struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Major       string `json:"major"`
	Fee         string `json:"fee"`
	Acceptance  string `json:"acceptance_rate"`
	Description string `json:"description"`
}

// UniversityUpdate is pushed whenever a selection changes.
type UniversityUpdate struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

// ============================================================================
// Voice
// ============================================================================

// VoiceToken grants access to the user's counsellor room.
type VoiceToken struct {
	Token    string `json:"token"`
	RoomName string `json:"room_name"`
	URL      string `json:"url,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Events   string `json:"events,omitempty"`
}

// DatabaseHealth is returned by /health/db.
type DatabaseHealth struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
