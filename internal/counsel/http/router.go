package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/globalgrad/counsellor/api/counsel" // Swagger docs
	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

// Config is the HTTP surface configuration.
type Config struct {
	ProjectName string

	// Prefix is prepended to every API route (API_V1_STR). Health routes
	// and the root stay at the origin.
	Prefix string

	Version     string
	CORSOrigins []string
	Cookie      CookieConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       Config
	sessions  *jwtx.SessionSigner
	startTime time.Time
	logger    *slog.Logger

	store   store.Store
	catalog *domain.Catalog
	events  events.Bus

	UserService       *service.UserService
	OnboardingService *service.OnboardingService
	SelectionService  *service.SelectionService
	VoiceService      *service.VoiceService
}

func NewRouter(
	cfg Config,
	sessions *jwtx.SessionSigner,
	st store.Store,
	catalog *domain.Catalog,
	bus events.Bus,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		sessions:  sessions,
		startTime: time.Now(),
		store:     st,
		catalog:   catalog,
		events:    bus,
		logger:    logger,
	}

	// Default middleware chain, outermost first.
	r.middlewares = []httpx.Middleware{
		middleware.RealIP,
		slogx.HTTPMiddleware(r.logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOnboarding()
	r.registerUniversities()
	r.registerVoice()
	r.registerCatalog()
	r.registerEvents()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Global Grad Counsellor API
//	@version		0.1.0
//	@description	Study-abroad counselling: accounts, onboarding questionnaire, university shortlist and voice counsellor credentials.
//	@description
//	@description				Authenticated routes read the HttpOnly access_token cookie set by signup and login.
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description				Session cookie. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.cfg.Prefix + path
}

// secured authenticates the caller and loads the account before h.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.sessions),
		RequireUser(r.UserService),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService: r.UserService,
		Sessions:    r.sessions,
		Cookie:      r.cfg.Cookie,
	}

	// Credential endpoints - strict rate limit by IP, login also per account
	r.Mux.Handle(r.route("POST", "/auth/signup"),
		httpx.Chain(http.HandlerFunc(h.HandleSignup), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle(r.route("POST", "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RateLimitByIPAndEmail(httpx.StrictLimit),
		))
	r.Mux.Handle(r.route("POST", "/auth/google-login"),
		httpx.Chain(http.HandlerFunc(h.HandleGoogleLogin), httpx.RateLimitByIP(httpx.StrictLimit)))

	r.Mux.Handle(r.route("POST", "/auth/logout"),
		httpx.Chain(http.HandlerFunc(h.HandleLogout), httpx.RateLimitByIP(httpx.ModerateLimit)))
	r.Mux.Handle(r.route("GET", "/auth/me"),
		r.secured(http.HandlerFunc(h.HandleMe), httpx.LenientLimit))
}

func (r *Router) registerOnboarding() {
	h := &OnboardingHandler{OnboardingService: r.OnboardingService}

	r.Mux.Handle(r.route("GET", "/onboarding"), r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle(r.route("PUT", "/onboarding"), r.secured(http.HandlerFunc(h.HandlePut), httpx.ModerateLimit))
}

func (r *Router) registerUniversities() {
	h := &UniversitiesHandler{SelectionService: r.SelectionService}

	list := r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit)
	set := r.secured(http.HandlerFunc(h.HandleSet), httpx.ModerateLimit)
	remove := r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit)

	// Both with and without the trailing slash the web app has used.
	for _, p := range []string{"/universities", "/universities/{$}"} {
		r.Mux.Handle(r.route("GET", p), list)
		r.Mux.Handle(r.route("POST", p), set)
		r.Mux.Handle(r.route("PUT", p), set)
	}
	r.Mux.Handle(r.route("DELETE", "/universities/{university_id}"), remove)
}

func (r *Router) registerVoice() {
	h := &VoiceHandler{VoiceService: r.VoiceService}

	// Token minting - moderate limit by user
	r.Mux.Handle(r.route("GET", "/voice/token"), r.secured(h, httpx.ModerateLimit))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{Catalog: r.catalog}

	r.Mux.Handle(r.route("GET", "/catalog"),
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.PublicLimit)))
	r.Mux.Handle(r.route("GET", "/catalog/{id}"),
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.PublicLimit)))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{Bus: r.events, AllowedOrigins: r.cfg.CORSOrigins}

	r.Mux.Handle(r.route("GET", "/events"), r.secured(h, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.Version),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.Version, r.store, r.events),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /health/db",
		httpx.Chain(DatabaseHealthHandler(r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /{$}", RootHandler(r.cfg.ProjectName))
}
