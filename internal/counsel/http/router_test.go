package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	counselhttp "github.com/globalgrad/counsellor/internal/counsel/http"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/internal/counsel/store/drivers/sqlite"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/cryptox"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

const prefix = "/api/v1"

var testKeys = jwtx.LiveKitKeys{APIKey: "devkey", APISecret: "devsecret-devsecret-devsecret-32"}

type fakeGoogle struct {
	claims jwtx.GoogleClaims
	err    error
}

func (f fakeGoogle) Verify(context.Context, string) (jwtx.GoogleClaims, error) {
	return f.claims, f.err
}

type testServer struct {
	URL      string
	Root     string
	Store    store.Store
	Bus      *events.MemoryBus
	Router   *counselhttp.Router
	Sessions *jwtx.SessionSigner
}

type option func(*counselhttp.Router)

func newTestServer(t *testing.T, st store.Store, opts ...option) *testServer {
	t.Helper()

	if st == nil {
		s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "http.db")))
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		st = s
	}

	sessions, err := jwtx.NewSessionSigner("HS256", []byte("test-session-key"))
	require.NoError(t, err)

	bus := events.NewMemoryBus(slogx.Discard())
	t.Cleanup(func() { _ = bus.Close() })

	cfg := counselhttp.Config{
		ProjectName: "Global Grad",
		Prefix:      prefix,
		Version:     "test",
		CORSOrigins: []string{"http://localhost:3000"},
		Cookie: counselhttp.CookieConfig{
			TTL:      time.Hour,
			SameSite: http.SameSiteLaxMode,
		},
	}
	r := counselhttp.NewRouter(cfg, sessions, st, domain.DefaultCatalog(), bus, slogx.Discard())
	r.UserService = &service.UserService{Store: st, Hasher: cryptox.NewPasswordHasher("")}
	r.OnboardingService = &service.OnboardingService{Store: st}
	r.SelectionService = &service.SelectionService{Store: st, Events: bus}
	r.VoiceService = &service.VoiceService{Keys: testKeys, URL: "wss://livekit.example.com"}
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL + prefix, Root: srv.URL, Store: st, Bus: bus, Router: r, Sessions: sessions}
}

func signedIn(t *testing.T, ts *testServer, email string) (*counselsdk.Client, counselsdk.User) {
	t.Helper()
	c := counselsdk.NewClient(ts.URL)
	u, err := c.Signup(t.Context(), counselsdk.SignupRequest{Email: email, Password: "s3cret", FullName: "Ada"})
	require.NoError(t, err)
	return c, u
}

func requireAPIError(t *testing.T, err error, status int, detail string) *counselsdk.APIError {
	t.Helper()
	var apiErr *counselsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	if detail != "" {
		require.Equal(t, detail, apiErr.Detail)
	}
	return apiErr
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := t.Context()

	c, u := signedIn(t, ts, "ada@example.com")
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, "Ada", u.FullName)
	require.True(t, u.IsActive)
	require.False(t, u.IsOnboarded)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, u.ID, me.ID)

	_, err = c.Signup(ctx, counselsdk.SignupRequest{Email: "ada@example.com", Password: "x"})
	requireAPIError(t, err, http.StatusBadRequest, "The user with this email already exists in the system.")

	require.NoError(t, c.Logout(ctx))
	_, err = c.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")

	other := counselsdk.NewClient(ts.URL)
	_, err = other.Login(ctx, "ada@example.com", "wrong")
	requireAPIError(t, err, http.StatusBadRequest, "Incorrect email or password")

	got, err := other.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	_, err = other.Me(ctx)
	require.NoError(t, err)
}

func TestSignup_Validation(t *testing.T) {
	ts := newTestServer(t, nil)
	c := counselsdk.NewClient(ts.URL)

	_, err := c.Signup(t.Context(), counselsdk.SignupRequest{Email: "not-an-email", Password: "pw"})
	apiErr := requireAPIError(t, err, http.StatusUnprocessableEntity, "")
	require.Equal(t, counselsdk.CodeValidation, apiErr.Code)

	resp, err := http.Post(ts.URL+"/auth/signup", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSessionCookie(t *testing.T) {
	ts := newTestServer(t, nil)

	body, _ := json.Marshal(counselsdk.SignupRequest{Email: "ada@example.com", Password: "pw"})
	resp, err := http.Post(ts.URL+"/auth/signup", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, 3600, cookie.MaxAge)
	require.Contains(t, cookie.Value, "Bearer ")
}

func TestGoogleLogin(t *testing.T) {
	google := fakeGoogle{claims: jwtx.GoogleClaims{Email: "grace@example.com", EmailVerified: true, Name: "Grace"}}
	ts := newTestServer(t, nil, func(r *counselhttp.Router) { r.UserService.Google = google })
	ctx := t.Context()

	c := counselsdk.NewClient(ts.URL)
	u, err := c.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", u.Email)
	require.Equal(t, "Grace", u.FullName)

	// Second login links to the same account.
	again, err := counselsdk.NewClient(ts.URL).GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)

	// id_token is accepted in place of credential.
	resp, err := http.Post(ts.URL+"/auth/google-login", "application/json",
		bytes.NewBufferString(`{"id_token":"id-token"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = c.GoogleLogin(ctx, "")
	requireAPIError(t, err, http.StatusUnprocessableEntity, "")
}

func TestGoogleLogin_Rejected(t *testing.T) {
	ts := newTestServer(t, nil, func(r *counselhttp.Router) {
		r.UserService.Google = fakeGoogle{err: jwtx.ErrEmailNotVerified}
	})
	_, err := counselsdk.NewClient(ts.URL).GoogleLogin(t.Context(), "id-token")
	requireAPIError(t, err, http.StatusBadRequest, "")

	disabled := newTestServer(t, nil)
	_, err = counselsdk.NewClient(disabled.URL).GoogleLogin(t.Context(), "id-token")
	requireAPIError(t, err, http.StatusServiceUnavailable, "")
}

func TestUnauthenticated(t *testing.T) {
	ts := newTestServer(t, nil)
	c := counselsdk.NewClient(ts.URL)
	ctx := t.Context()

	_, err := c.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Could not validate credentials")
	_, err = c.GetOnboarding(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
	_, err = c.ListUniversities(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
	_, err = c.VoiceToken(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestUnauthenticated_IdenticalFailures(t *testing.T) {
	ts := newTestServer(t, nil)
	_, user := signedIn(t, ts, "grace@example.com")

	valid, err := ts.Sessions.Issue(user.ID, time.Hour)
	require.NoError(t, err)
	expired, err := ts.Sessions.Sign(jwtx.NewSessionClaims(user.ID, time.Minute, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)
	ghost, err := ts.Sessions.Issue(user.ID+1000, time.Hour)
	require.NoError(t, err)
	named := jwtx.NewSessionClaims(user.ID, time.Hour, time.Now())
	named.Subject = "grace"
	nonNumeric, err := ts.Sessions.Sign(named)
	require.NoError(t, err)

	me := func(cookie string) (int, string, []byte) {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, ts.URL+"/auth/me", nil)
		require.NoError(t, err)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "access_token", Value: cookie})
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, resp.Header.Get("WWW-Authenticate"), buf.Bytes()
	}

	code, _, _ := me("Bearer " + valid)
	require.Equal(t, http.StatusOK, code)

	code, challenge, want := me("")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Bearer", challenge)
	require.JSONEq(t, `{"detail":"Could not validate credentials","code":"unauthorized"}`, string(want))

	tests := []struct {
		name   string
		cookie string
	}{
		{"expired", "Bearer " + expired},
		{"tampered", "Bearer " + valid[:len(valid)-2] + "xx"},
		{"malformed", "Bearer not-a-jwt"},
		{"unknown user", "Bearer " + ghost},
		{"non-numeric subject", "Bearer " + nonNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, challenge, body := me(tt.cookie)
			require.Equal(t, http.StatusUnauthorized, code)
			require.Equal(t, "Bearer", challenge)
			require.Equal(t, string(want), string(body))
		})
	}
}

func TestOnboarding(t *testing.T) {
	ts := newTestServer(t, nil)
	c, _ := signedIn(t, ts, "ada@example.com")
	ctx := t.Context()

	got, err := c.GetOnboarding(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	degree := "Masters"
	year := 2026
	o, err := c.SaveOnboarding(ctx, counselsdk.OnboardingAnswers{IntendedDegree: &degree, TargetIntakeYear: &year})
	require.NoError(t, err)
	require.Equal(t, "Masters", *o.IntendedDegree)
	require.Equal(t, 2026, *o.TargetIntakeYear)
	require.Nil(t, o.FieldOfStudy)

	field := "Computer Science"
	o, err = c.SaveOnboarding(ctx, counselsdk.OnboardingAnswers{FieldOfStudy: &field})
	require.NoError(t, err)
	require.Equal(t, "Masters", *o.IntendedDegree, "omitted keys are kept on update")
	require.Equal(t, "Computer Science", *o.FieldOfStudy)
	require.NotNil(t, o.UpdatedAt)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.IsOnboarded)

	stored, err := c.GetOnboarding(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, o.ID, stored.ID)
}

func TestUniversities(t *testing.T) {
	ts := newTestServer(t, nil)
	c, _ := signedIn(t, ts, "ada@example.com")
	ctx := t.Context()

	list, err := c.ListUniversities(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	sel, err := c.SetUniversity(ctx, "mit", counselsdk.StatusShortlisted)
	require.NoError(t, err)
	require.Equal(t, "mit", sel.UniversityID)
	require.Equal(t, counselsdk.StatusShortlisted, sel.Status)

	locked, err := c.SetUniversity(ctx, "mit", counselsdk.StatusLocked)
	require.NoError(t, err)
	require.Equal(t, sel.ID, locked.ID, "status change keeps the row")
	require.Equal(t, counselsdk.StatusLocked, locked.Status)

	_, err = c.SetUniversity(ctx, "oxford", counselsdk.StatusShortlisted)
	require.NoError(t, err)

	list, err = c.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "mit", list[0].UniversityID)
	require.Equal(t, "oxford", list[1].UniversityID)

	require.NoError(t, c.RemoveUniversity(ctx, "mit"))
	err = c.RemoveUniversity(ctx, "mit")
	requireAPIError(t, err, http.StatusNotFound, "University not found in selection")

	_, err = c.SetUniversity(ctx, "mit", "favourite")
	requireAPIError(t, err, http.StatusUnprocessableEntity, "")
	_, err = c.SetUniversity(ctx, "", counselsdk.StatusLocked)
	requireAPIError(t, err, http.StatusUnprocessableEntity, "")
}

func TestUniversities_IDAlias(t *testing.T) {
	ts := newTestServer(t, nil)
	c, _ := signedIn(t, ts, "ada@example.com")

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPut, ts.URL+"/universities/",
		bytes.NewBufferString(`{"id":"stanford","status":"locked"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sel counselsdk.Selection
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sel))
	require.Equal(t, "stanford", sel.UniversityID)
	require.Equal(t, counselsdk.StatusLocked, sel.Status)
}

func TestUniversities_PerUser(t *testing.T) {
	ts := newTestServer(t, nil)
	ada, _ := signedIn(t, ts, "ada@example.com")
	bob, _ := signedIn(t, ts, "bob@example.com")
	ctx := t.Context()

	_, err := ada.SetUniversity(ctx, "mit", counselsdk.StatusShortlisted)
	require.NoError(t, err)

	list, err := bob.ListUniversities(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	requireAPIError(t, bob.RemoveUniversity(ctx, "mit"), http.StatusNotFound, "")
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t, nil)
	c, _ := signedIn(t, ts, "ada@example.com")
	ctx := t.Context()

	stream, err := c.Subscribe(ctx)
	require.NoError(t, err)
	defer stream.Close()

	_, err = c.SetUniversity(ctx, "mit", counselsdk.StatusLocked)
	require.NoError(t, err)

	ev, err := stream.Next()
	require.NoError(t, err)
	require.Equal(t, counselsdk.UniversityUpdate{Type: "university_update", Action: "lock", ID: "mit"}, ev)

	require.NoError(t, c.RemoveUniversity(ctx, "mit"))
	ev, err = stream.Next()
	require.NoError(t, err)
	require.Equal(t, "remove", ev.Action)
}

func TestEvents_RequiresSession(t *testing.T) {
	ts := newTestServer(t, nil)
	_, err := counselsdk.NewClient(ts.URL).Subscribe(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestVoiceToken(t *testing.T) {
	ts := newTestServer(t, nil)
	c, u := signedIn(t, ts, "ada@example.com")

	tok, err := c.VoiceToken(t.Context())
	require.NoError(t, err)
	require.Equal(t, domain.RoomName(u.ID), tok.RoomName)
	require.Equal(t, "wss://livekit.example.com", tok.URL)

	claims, err := testKeys.Parse(tok.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.Video)
	require.Equal(t, tok.RoomName, claims.Video.Room)
	require.True(t, claims.Video.RoomJoin)
}

func TestVoiceToken_Unconfigured(t *testing.T) {
	ts := newTestServer(t, nil, func(r *counselhttp.Router) { r.VoiceService.Keys = jwtx.LiveKitKeys{} })
	c, _ := signedIn(t, ts, "ada@example.com")

	_, err := c.VoiceToken(t.Context())
	requireAPIError(t, err, http.StatusInternalServerError, "LiveKit credentials not configured")
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t, nil)
	c := counselsdk.NewClient(ts.URL)

	all, err := c.Catalog(t.Context())
	require.NoError(t, err)
	require.Len(t, all, len(domain.DefaultCatalog().All()))

	resp, err := http.Get(ts.URL + "/catalog/" + all[0].ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get(ts.URL + "/catalog/nowhere")
	require.NoError(t, err)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestSystemRoutes(t *testing.T) {
	ts := newTestServer(t, nil)
	c := counselsdk.NewClient(ts.URL)
	ctx := t.Context()

	live, err := c.Liveness(ctx, ts.Root)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.Readiness(ctx, ts.Root)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)

	resp, err := http.Get(ts.Root + "/")
	require.NoError(t, err)
	var msg counselsdk.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	resp.Body.Close()
	require.Equal(t, "Welcome to Global Grad API", msg.Message)

	resp, err = http.Get(ts.Root + "/health/db")
	require.NoError(t, err)
	var db counselsdk.DatabaseHealth
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&db))
	resp.Body.Close()
	require.Equal(t, counselsdk.DatabaseHealth{Status: "ok", Database: "connected"}, db)
}

func TestUnconfiguredDatabase(t *testing.T) {
	ts := newTestServer(t, store.Unconfigured())
	c := counselsdk.NewClient(ts.URL)
	ctx := t.Context()

	ready, err := c.Readiness(ctx, ts.Root)
	require.NoError(t, err)
	require.Equal(t, "not configured", ready.Checks.Database)

	_, err = c.Signup(ctx, counselsdk.SignupRequest{Email: "ada@example.com", Password: "pw"})
	requireAPIError(t, err, http.StatusServiceUnavailable, "Database not configured")

	resp, err := http.Get(ts.Root + "/health/db")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	all, err := c.Catalog(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, ts.URL+"/auth/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestParseSameSite(t *testing.T) {
	require.Equal(t, http.SameSiteStrictMode, counselhttp.ParseSameSite("Strict"))
	require.Equal(t, http.SameSiteNoneMode, counselhttp.ParseSameSite("none"))
	require.Equal(t, http.SameSiteLaxMode, counselhttp.ParseSameSite(""))
	require.Equal(t, http.SameSiteLaxMode, counselhttp.ParseSameSite("bogus"))
}
