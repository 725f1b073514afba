package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/globalgrad/counsellor/pkg/httpx"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	TTL      time.Duration
	SameSite http.SameSite
	Secure   bool
}

// ParseSameSite maps COOKIE_SAMESITE onto http.SameSite. Unknown values
// fall back to Lax.
func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c CookieConfig) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   int(c.TTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}
