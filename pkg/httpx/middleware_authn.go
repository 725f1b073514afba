package httpx

import (
	"net/http"
	"strings"

	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

// SessionCookieName is the cookie carrying "Bearer <jwt>".
const SessionCookieName = "access_token"

// CredentialsErrorDetail is returned for every authentication failure so
// callers cannot tell an expired token from a deleted account.
const CredentialsErrorDetail = "Could not validate credentials"

// Verifier checks a raw session token.
type Verifier interface {
	Verify(token string) (jwtx.SessionClaims, error)
}

// AuthnMiddleware reads the session token from the access_token cookie,
// falling back to an Authorization bearer header, and stores the user id in
// the request context.
func AuthnMiddleware(v Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := SessionToken(r)
			if raw == "" {
				WriteUnauthorized(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("session verify failed", "err", err)
				WriteUnauthorized(w)
				return
			}
			userID, err := claims.UserID()
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			ctx = contextWithAuth(ctx, claims, userID)
			ctx = slogx.WithContext(ctx, log.With("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the bare JWT from the cookie or Authorization
// header. The cookie's "Bearer " prefix is optional; the header's is not.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		v := strings.TrimSpace(c.Value)
		if tok := stripBearer(v); tok != "" {
			return tok
		}
		if v != "" && !strings.Contains(v, " ") {
			return v
		}
	}
	return stripBearer(r.Header.Get("Authorization"))
}

func stripBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 7 || !strings.EqualFold(v[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(v[7:])
}

// WriteUnauthorized writes the uniform 401 credentials error.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteError(w, http.StatusUnauthorized, "unauthorized", CredentialsErrorDetail)
}
