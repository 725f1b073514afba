package http

import (
	"net/http"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

type AuthHandler struct {
	UserService *service.UserService
	Sessions    *jwtx.SessionSigner
	Cookie      CookieConfig
}

// HandleSignup registers a password account and signs it in.
//
//	@Summary		Sign up
//	@Description	Creates an account and sets the access_token session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		counselsdk.SignupRequest	true	"Account details"
//	@Success		200		{object}	counselsdk.User
//	@Failure		400		{object}	httpx.ErrorResponse	"Email already registered"
//	@Failure		422		{object}	httpx.ErrorResponse	"Invalid email, password or body"
//	@Failure		503		{object}	httpx.ErrorResponse	"Database not configured"
//	@Router			/api/v1/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req counselsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidation(w, err.Error())
		return
	}

	user, err := h.UserService.Signup(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleLogin signs in with email and password.
//
//	@Summary		Log in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		counselsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	counselsdk.LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Incorrect email or password"
//	@Failure		422		{object}	httpx.ErrorResponse	"Invalid body"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req counselsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidation(w, err.Error())
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, counselsdk.LoginResponse{Message: "Success", User: userResponse(user)})
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
	IDToken    string `json:"id_token"`
}

// HandleGoogleLogin signs in with a Google Sign-In ID token, creating the
// account on first use.
//
//	@Summary		Log in with Google
//	@Description	Verifies the Google ID token against Google's signing keys before trusting its email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		counselsdk.GoogleLoginRequest	true	"Google credential"
//	@Success		200		{object}	counselsdk.LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Credential rejected"
//	@Failure		503		{object}	httpx.ErrorResponse	"Google login not configured"
//	@Router			/api/v1/auth/google-login [post].
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidation(w, err.Error())
		return
	}
	credential := strings.TrimSpace(req.Credential)
	if credential == "" {
		credential = strings.TrimSpace(req.IDToken)
	}
	if credential == "" {
		writeValidation(w, "credential is required")
		return
	}

	user, err := h.UserService.GoogleLogin(r.Context(), credential)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, counselsdk.LoginResponse{Message: "Success", User: userResponse(user)})
}

// HandleLogout clears the session cookie.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	httpx.MessageResponse
//	@Router		/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.clear(w)
	httpx.WriteMessage(w, "Logged out successfully")
}

// HandleMe returns the signed-in user.
//
//	@Summary	Current user
//	@Tags		Auth
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	counselsdk.User
//	@Failure	401	{object}	httpx.ErrorResponse	"Could not validate credentials"
//	@Router		/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user domain.User) bool {
	token, err := h.Sessions.Issue(user.ID, h.Cookie.TTL)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to issue session token", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, counselsdk.CodeInternal, detailInternal)
		return false
	}
	h.Cookie.set(w, token)
	return true
}
