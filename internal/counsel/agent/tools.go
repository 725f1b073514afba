package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
)

const (
	ToolGetUserProfile = "get_user_profile"
	ToolAddToShortlist = "add_to_shortlist"
	ToolLockUniversity = "lock_university"
	ToolGetMyList      = "get_my_list"
)

const (
	msgDatabaseNotConfigured = "Database not configured"
	msgProfileNotFound       = "User profile not found. Please ask the user to complete onboarding."
	msgProfileFailed         = "Failed to load the user profile."
	msgShortlistFailed       = "Failed to shortlist university."
	msgLockFailed            = "Failed to lock university."
	msgListEmpty             = "No universities currently in your list."
	msgListFailed            = "Failed to load the university list."
	notProvided              = "Not provided"
)

var universityIDParam = Parameter{
	Name:        "university_id",
	Type:        "string",
	Description: "The ID of the university (e.g., 'usa-1').",
	Required:    true,
}

// CounsellorTools returns the four counselling tools bound to st.
func CounsellorTools(st store.Store) []Tool {
	t := &toolset{store: st}
	return []Tool{
		{
			ToolDeclaration: ToolDeclaration{
				Name:        ToolGetUserProfile,
				Description: "Get the user's profile information (GPA, scores, budget, etc.).",
			},
			Handler: t.getUserProfile,
			Failure: msgProfileFailed,
		},
		{
			ToolDeclaration: ToolDeclaration{
				Name:        ToolAddToShortlist,
				Description: "Add a university to the user's shortlist.",
				Parameters:  []Parameter{universityIDParam},
			},
			Handler: t.addToShortlist,
			Failure: msgShortlistFailed,
		},
		{
			ToolDeclaration: ToolDeclaration{
				Name:        ToolLockUniversity,
				Description: "Lock a university (confirm as final choice).",
				Parameters:  []Parameter{universityIDParam},
			},
			Handler: t.lockUniversity,
			Failure: msgLockFailed,
		},
		{
			ToolDeclaration: ToolDeclaration{
				Name:        ToolGetMyList,
				Description: "Get the current list of shortlisted or locked universities.",
			},
			Handler: t.getMyList,
			Failure: msgListFailed,
		},
	}
}

type toolset struct {
	store store.Store
}

func (t *toolset) getUserProfile(ctx context.Context, s *Session, _ Args) string {
	if !store.IsConfigured(t.store) {
		return msgDatabaseNotConfigured
	}
	s.logger.Info("fetching profile", slog.Int64("user_id", s.UserID()))

	profile, err := t.store.Onboarding().GetOnboarding(ctx, s.UserID())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return msgProfileNotFound
	case errors.Is(err, store.ErrUnconfigured):
		return msgDatabaseNotConfigured
	case err != nil:
		s.logger.Error("failed to fetch profile", slog.Any("error", err))
		return msgProfileFailed
	}
	return FormatProfile(profile)
}

func (t *toolset) addToShortlist(ctx context.Context, s *Session, args Args) string {
	return t.setStatus(ctx, s, args, domain.StatusShortlisted, msgShortlistFailed,
		"Successfully added %s to shortlist.")
}

func (t *toolset) lockUniversity(ctx context.Context, s *Session, args Args) string {
	return t.setStatus(ctx, s, args, domain.StatusLocked, msgLockFailed,
		"Successfully locked %s.")
}

func (t *toolset) setStatus(
	ctx context.Context,
	s *Session,
	args Args,
	status domain.SelectionStatus,
	failure, success string,
) string {
	if !store.IsConfigured(t.store) {
		return msgDatabaseNotConfigured
	}

	universityID, err := args.String(universityIDParam.Name)
	if err != nil {
		s.logger.Warn("invalid tool arguments", slog.Any("error", err))
		return failure
	}
	s.logger.Info("updating selection",
		slog.Int64("user_id", s.UserID()),
		slog.String("university_id", universityID),
		slog.String("status", status.String()),
	)

	if _, err := t.store.Selections().UpsertSelection(ctx, s.UserID(), universityID, status); err != nil {
		if errors.Is(err, store.ErrUnconfigured) {
			return msgDatabaseNotConfigured
		}
		s.logger.Error("failed to update selection",
			slog.String("university_id", universityID),
			slog.Any("error", err),
		)
		return failure
	}

	s.Notify(ctx, domain.NewUniversityUpdate(domain.ActionForStatus(status), universityID))
	return fmt.Sprintf(success, universityID)
}

func (t *toolset) getMyList(ctx context.Context, s *Session, _ Args) string {
	if !store.IsConfigured(t.store) {
		return msgDatabaseNotConfigured
	}

	selections, err := t.store.Selections().ListSelections(ctx, s.UserID())
	if err != nil {
		if errors.Is(err, store.ErrUnconfigured) {
			return msgDatabaseNotConfigured
		}
		s.logger.Error("failed to list selections", slog.Any("error", err))
		return msgListFailed
	}
	return FormatSelections(selections)
}

// FormatProfile renders the questionnaire as the bullet list the model
// reads. Unanswered questions read "Not provided"; missing scores "N/A".
func FormatProfile(p domain.Onboarding) string {
	lines := []string{
		"- Education Level: " + orNotProvided(p.CurrentEducationLevel),
		"- Major: " + orNotProvided(p.DegreeMajor),
		"- GPA: " + orNotProvided(p.GPAOrPercentage),
		"- Intended Degree: " + orNotProvided(p.IntendedDegree) + " in " + orNotProvided(p.FieldOfStudy),
		"- Target Intake: " + intOrNotProvided(p.TargetIntakeYear),
		"- Budget: " + orNotProvided(p.BudgetRangePerYear) + " (" + orNotProvided(p.FundingPlan) + ")",
		"- IELTS/TOEFL: " + orNotProvided(p.IELTSTOEFLStatus) + " (" + orNA(p.IELTSTOEFLScore) + ")",
		"- GRE/GMAT: " + orNotProvided(p.GREGMATStatus) + " (" + orNA(p.GREGMATScore) + ")",
	}
	return strings.Join(lines, "\n")
}

// FormatSelections renders one "- {id} ({status})" line per selection.
func FormatSelections(selections []domain.Selection) string {
	if len(selections) == 0 {
		return msgListEmpty
	}
	lines := make([]string, 0, len(selections))
	for _, sel := range selections {
		lines = append(lines, fmt.Sprintf("- %s (%s)", sel.UniversityID, sel.Status))
	}
	return strings.Join(lines, "\n")
}

func orNotProvided(s *string) string {
	if s == nil || *s == "" {
		return notProvided
	}
	return *s
}

func intOrNotProvided(i *int) string {
	if i == nil {
		return notProvided
	}
	return strconv.Itoa(*i)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
