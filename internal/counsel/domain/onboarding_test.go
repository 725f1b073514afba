package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnboardingPatch_Decode(t *testing.T) {
	t.Parallel()

	var p OnboardingPatch
	err := json.Unmarshal([]byte(`{"degree_major":"CS","gpa_or_percentage":null,"graduation_year":2024}`), &p)
	require.NoError(t, err)

	require.True(t, p.DegreeMajor.Set)
	require.Equal(t, "CS", *p.DegreeMajor.Value)

	require.True(t, p.GPAOrPercentage.Set, "explicit null is still present")
	require.Nil(t, p.GPAOrPercentage.Value)

	require.True(t, p.GraduationYear.Set)
	require.Equal(t, 2024, *p.GraduationYear.Value)

	require.False(t, p.FundingPlan.Set, "missing keys are not set")
}

func TestOnboardingPatch_RejectsWrongTypes(t *testing.T) {
	t.Parallel()

	var p OnboardingPatch
	err := json.Unmarshal([]byte(`{"graduation_year":"soon"}`), &p)
	require.Error(t, err)
}

func TestOnboarding_Apply(t *testing.T) {
	t.Parallel()

	t.Run("create leaves omitted fields null", func(t *testing.T) {
		var o Onboarding
		o.Apply(OnboardingPatch{DegreeMajor: Some("Physics")})

		require.Equal(t, "Physics", *o.DegreeMajor)
		require.Nil(t, o.GPAOrPercentage)
		require.Nil(t, o.TargetIntakeYear)
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		o := Onboarding{
			DegreeMajor:     ptr("Physics"),
			GPAOrPercentage: ptr("3.8"),
			GraduationYear:  ptr(2023),
		}
		o.Apply(OnboardingPatch{
			DegreeMajor:    Some("Maths"),
			GraduationYear: Null[int](),
		})

		require.Equal(t, "Maths", *o.DegreeMajor)
		require.Equal(t, "3.8", *o.GPAOrPercentage)
		require.Nil(t, o.GraduationYear, "explicit null clears the answer")
	})

	t.Run("patch values are copied", func(t *testing.T) {
		p := OnboardingPatch{SOPStatus: Some("draft")}
		var o Onboarding
		o.Apply(p)
		*p.SOPStatus.Value = "final"

		require.Equal(t, "draft", *o.SOPStatus)
	})
}

func ptr[T any](v T) *T { return &v }
