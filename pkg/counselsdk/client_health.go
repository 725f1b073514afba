package counselsdk

import (
	"context"
	"net/http"
)

// Liveness calls GET /livez. Health routes are not under the API prefix, so
// root is the server origin.
func (c *Client) Liveness(ctx context.Context, root string) (HealthResponse, error) {
	return c.health(ctx, root+"/livez")
}

// Readiness calls GET /readyz.
func (c *Client) Readiness(ctx context.Context, root string) (HealthResponse, error) {
	return c.health(ctx, root+"/readyz")
}

func (c *Client) health(ctx context.Context, u string) (HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return HealthResponse{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return HealthResponse{}, err
	}
	var out HealthResponse
	err = decodeJSON(resp, &out, http.StatusOK)
	return out, err
}
