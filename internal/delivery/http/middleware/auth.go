package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context carrying the authenticated identity.
func SetIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated identity, if present.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// Authorizer checks a session token against a set of admitted roles.
type Authorizer interface {
	Authorize(token string, required domain.RoleSet) (*domain.Identity, error)
}

// Authenticator turns guard decisions into HTTP responses.
type Authenticator struct {
	Guard   Authorizer
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func NewAuthenticator(guard Authorizer, logger *slog.Logger, m *metrics.Metrics) *Authenticator {
	return &Authenticator{Guard: guard, Logger: logger, Metrics: m}
}

// Require returns a wrapper that reads the session cookie, authorizes it for
// roles (empty means any authenticated member) and stores the identity in the
// request context. Missing or bad tokens get 401; a disallowed role gets 403.
func (a *Authenticator) Require(roles domain.RoleSet) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(CookieName); err == nil {
				token = strings.TrimSpace(c.Value)
			}
			if token == "" {
				a.Metrics.IncAuthFailure(metrics.AuthMissing)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "No autenticado")
				return
			}

			id, err := a.Guard.Authorize(token, roles)
			switch {
			case err == nil:
				next(w, r.WithContext(SetIdentity(r.Context(), id)))
			case errors.Is(err, domain.ErrForbidden):
				a.Metrics.IncAuthFailure(metrics.AuthForbidden)
				a.Logger.DebugContext(r.Context(), "access denied", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "No autorizado")
			case errors.Is(err, domain.ErrUnauthenticated):
				reason := metrics.AuthInvalid
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = metrics.AuthExpired
				}
				a.Metrics.IncAuthFailure(reason)
				a.Logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "reason", reason)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Token inválido o expirado")
			default:
				a.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Error interno")
			}
		}
	}
}
