package http

import (
	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
)

func userResponse(u domain.User) counselsdk.User {
	return counselsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsOnboarded: u.IsOnboarded,
		CreatedAt:   u.CreatedAt,
	}
}

func onboardingResponse(o domain.Onboarding) counselsdk.Onboarding {
	return counselsdk.Onboarding{
		ID:                    o.ID,
		UserID:                o.UserID,
		CurrentEducationLevel: o.CurrentEducationLevel,
		DegreeMajor:           o.DegreeMajor,
		GraduationYear:        o.GraduationYear,
		GPAOrPercentage:       o.GPAOrPercentage,
		IntendedDegree:        o.IntendedDegree,
		FieldOfStudy:          o.FieldOfStudy,
		TargetIntakeYear:      o.TargetIntakeYear,
		PreferredCountries:    o.PreferredCountries,
		BudgetRangePerYear:    o.BudgetRangePerYear,
		FundingPlan:           o.FundingPlan,
		IELTSTOEFLStatus:      o.IELTSTOEFLStatus,
		IELTSTOEFLScore:       o.IELTSTOEFLScore,
		GREGMATStatus:         o.GREGMATStatus,
		GREGMATScore:          o.GREGMATScore,
		SOPStatus:             o.SOPStatus,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func selectionResponse(s domain.Selection) counselsdk.Selection {
	return counselsdk.Selection{
		ID:           s.ID,
		UserID:       s.UserID,
		UniversityID: s.UniversityID,
		Status:       s.Status.String(),
	}
}

func universityResponse(u domain.University) counselsdk.University {
	return counselsdk.University{
		ID:          u.ID,
		Name:        u.Name,
		Country:     u.Country,
		Major:       u.Major,
		Fee:         u.Fee,
		Acceptance:  u.Acceptance,
		Description: u.Description,
	}
}
