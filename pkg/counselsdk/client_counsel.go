package counselsdk

import (
	"context"
	"net/http"
	"net/url"
)

// GetOnboarding returns the questionnaire, or nil when none was submitted.
func (c *Client) GetOnboarding(ctx context.Context) (*Onboarding, error) {
	var out *Onboarding
	err := c.call(ctx, http.MethodGet, "/onboarding", nil, &out)
	return out, err
}

// SaveOnboarding creates or updates the questionnaire.
func (c *Client) SaveOnboarding(ctx context.Context, answers OnboardingAnswers) (Onboarding, error) {
	var out Onboarding
	err := c.call(ctx, http.MethodPut, "/onboarding", answers, &out)
	return out, err
}

// ListUniversities returns the user's selections in the order they were added.
func (c *Client) ListUniversities(ctx context.Context) ([]Selection, error) {
	var out []Selection
	err := c.call(ctx, http.MethodGet, "/universities", nil, &out)
	return out, err
}

// SetUniversity shortlists or locks a university.
func (c *Client) SetUniversity(ctx context.Context, universityID, status string) (Selection, error) {
	var out Selection
	err := c.call(ctx, http.MethodPost, "/universities",
		SelectionRequest{UniversityID: universityID, Status: status}, &out)
	return out, err
}

// RemoveUniversity drops a university from the list.
func (c *Client) RemoveUniversity(ctx context.Context, universityID string) error {
	var out MessageResponse
	return c.call(ctx, http.MethodDelete, "/universities/"+url.PathEscape(universityID), nil, &out)
}

// Catalog returns the static university catalog.
func (c *Client) Catalog(ctx context.Context) ([]University, error) {
	var out []University
	err := c.call(ctx, http.MethodGet, "/catalog", nil, &out)
	return out, err
}

// VoiceToken returns credentials for the user's counsellor room.
func (c *Client) VoiceToken(ctx context.Context) (VoiceToken, error) {
	var out VoiceToken
	err := c.call(ctx, http.MethodGet, "/voice/token", nil, &out)
	return out, err
}
