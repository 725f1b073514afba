package http

import (
	"context"
	"net/http"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

type ctxKey struct{}

// RequireUser loads the account behind the verified session. Missing or
// inactive accounts get the same 401 as a bad token.
func RequireUser(users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				httpx.WriteUnauthorized(w)
				return
			}

			user, err := users.Authenticate(ctx, userID)
			if err != nil {
				slogx.FromContext(ctx).Debug("session user rejected", "err", err)
				httpx.WriteUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKey{}, user)))
		})
	}
}

// currentUser returns the account placed by RequireUser.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.User)
	return u, ok
}
