package counselsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Machine codes carried in error bodies.
const (
	CodeValidation    = "validation_error"
	CodeEmailTaken    = "email_taken"
	CodeInvalidLogin  = "invalid_credentials"
	CodeUnauthorized  = "unauthorized"
	CodeNotFound      = "not_found"
	CodeUnavailable   = "service_unavailable"
	CodeNotConfigured = "not_configured"
	CodeRateLimited   = "rate_limit_exceeded"
	CodeInternal      = "internal_error"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("counselsdk: %d %s: %s", e.StatusCode, e.Code, e.Detail)
	}
	return fmt.Sprintf("counselsdk: %d: %s", e.StatusCode, e.Detail)
}

// parseErrorResponse builds an APIError from a failed response body. Bodies
// that are not JSON keep the status text as the detail.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
