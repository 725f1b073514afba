package counselsdk

import (
	"context"
	"net/http"
)

// Signup creates a password account and signs the client in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (User, error) {
	var user User
	err := c.call(ctx, http.MethodPost, "/auth/signup", req, &user)
	return user, err
}

// Login signs the client in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out LoginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out)
	return out.User, err
}

// GoogleLogin signs the client in with a Google ID token.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (User, error) {
	var out LoginResponse
	err := c.call(ctx, http.MethodPost, "/auth/google-login", GoogleLoginRequest{Credential: credential}, &out)
	return out.User, err
}

// Logout clears the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	var out MessageResponse
	return c.call(ctx, http.MethodPost, "/auth/logout", nil, &out)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.call(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}
