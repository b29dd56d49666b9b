package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/internal/tracker/storage"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/httpx"
	"github.com/uptrack/uptrack/pkg/jwtx"
	"github.com/uptrack/uptrack/pkg/slogx"

	_ "github.com/uptrack/uptrack/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	files     storage.Storage
	uploadDir string

	AuthService    *service.AuthService
	UserService    *service.UserService
	UploadService  *service.UploadService
	StatsService   *service.StatsService
	MaxUploadBytes int64
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	files storage.Storage,
	uploadDir string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		files:        files,
		uploadDir:    uploadDir,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerUploads()
	r.registerStats()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			UpTrack API
//	@version		0.1.0
//	@description	Multi-tenant file-upload tracking service: accounts authenticate
//	@description	with JWT bearer tokens, submit tabular files (csv/xlsx/xls) and
//	@description	administrators read aggregate usage statistics across all owners.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are brute-forceable; strict limits by IP.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Verify does its own token handling so stale tokens still get a clean
	// 401 envelope rather than a middleware rejection.
	r.Mux.Handle("POST /v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService:  r.UserService,
		StatsService: r.StatsService,
	}

	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/users/{id}/stats",
		httpx.Chain(http.HandlerFunc(h.HandleStats),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUploads() {
	h := &UploadsHandler{
		UploadService:  r.UploadService,
		Files:          r.files,
		MaxUploadBytes: r.MaxUploadBytes,
	}

	// Submissions move real bytes; moderate limit per user.
	r.Mux.Handle("POST /v1/uploads",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/uploads",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/uploads/history/{userId}",
		httpx.Chain(http.HandlerFunc(h.HandleHistory),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/uploads/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/uploads/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/uploads/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerStats() {
	h := &SystemStatsHandler{StatsService: r.StatsService}

	r.Mux.Handle("GET /v1/stats/system",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.uploadDir),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
