package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/internal/auth/store"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/slogx"

	_ "github.com/snapvault/snapvault/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AccountService    *service.AccountService
	SessionService    *service.SessionService
	RevocationService *service.RevocationService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerTokens()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SnapVault Authentication Service API
//	@version		0.1.0
//	@description	Authentication service for the SnapVault photo-sharing backend: account
//	@description	registration, login, token refresh and revocation, email confirmation.
//	@description
//	@description				Access and email tokens are HMAC-signed (HS256), refresh tokens with a
//	@description				separate stronger key (HS512).
//
//	@contact.name				SnapVault Team
//	@contact.url				https://github.com/snapvault/snapvault
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	registerHandler := &RegisterHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Rate limited by IP + email form field to slow credential stuffing.
	loginHandler := &LoginHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "email"),
		),
	)

	logoutHandler := &LogoutHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	confirmHandler := &ConfirmEmailHandler{AccountService: r.AccountService}
	r.Mux.Handle("GET /v1/confirm-email",
		httpx.Chain(confirmHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTokens() {
	refreshHandler := &RefreshHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/token/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{}
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(h,
			r.requireSession(),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminBanHandler{AccountService: r.AccountService}
	r.Mux.Handle("PATCH /v1/admin/users/{email}/ban",
		httpx.Chain(h,
			r.requireSession(),
			r.requireRole(domain.RoleModerator, domain.RoleAdmin),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
