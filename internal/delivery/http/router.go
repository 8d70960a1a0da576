package http

import (
	"log/slog"
	"net/http"

	"clubevents/internal/delivery/http/controllers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps carries everything NewRouter wires together.
type RouterDeps struct {
	Logger             *slog.Logger
	Metrics            *metrics.Metrics
	Authenticator      *middleware.Authenticator
	PrivilegedRoles    domain.RoleSet
	CORSAllowedOrigins []string

	Auth    *controllers.AuthController
	Members *controllers.MemberController
	Events  *controllers.EventController
}

// NewRouter initializes the HTTP router with all application routes and
// wraps it in the shared middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	anyMember := d.Authenticator.Require(domain.AnyRole())
	privileged := d.Authenticator.Require(d.PrivilegedRoles)

	// Auth
	mux.HandleFunc("POST /login", d.Auth.Login)
	mux.HandleFunc("POST /logout", d.Auth.Logout)
	mux.HandleFunc("GET /profile", anyMember(d.Members.Profile))

	// Events
	mux.HandleFunc("POST /events", privileged(d.Events.CreateEvent))
	mux.HandleFunc("GET /events", anyMember(d.Events.ListEvents))
	mux.HandleFunc("GET /events/{id}", anyMember(d.Events.GetEvent))
	mux.HandleFunc("POST /events/{id}/register", anyMember(d.Events.Register))

	// Operations
	mux.HandleFunc("GET /healthz", d.Members.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = d.Metrics.Middleware(mux)
	handler = middleware.LoggingMiddleware(d.Logger, handler)
	handler = middleware.RequestID(handler)
	return middleware.CORS(d.CORSAllowedOrigins, handler)
}
