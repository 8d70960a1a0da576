package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	h "clubevents/internal/delivery/http/helpers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"
)

// LoginRequest is the request body for POST /login. matricula may be a JSON
// number or a numeric string.
type LoginRequest struct {
	Identifier any `json:"matricula" swaggertype:"string" example:"201912345"`
}

func (l LoginRequest) identifier() (int64, bool) {
	var s string
	switch v := l.Identifier.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if _, ok := l.identifier(); !ok {
		return []string{"Matrícula inválida"}
	}
	return nil
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	Metrics *metrics.Metrics
	// SecureCookie marks the session cookie Secure (HTTPS only).
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, m *metrics.Metrics, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		Metrics:      m,
		SecureCookie: secureCookie,
	}
}

// Login godoc
// @Summary Log in with a matrícula
// @Description Looks the matrícula up in the roster and sets an HttpOnly "token" cookie valid for 8 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Member identifier"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized (not registered)"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		c.Metrics.IncLogin(metrics.OutcomeInvalid)
		return
	}
	identifier, _ := req.identifier()
	token, member, err := c.Service.Login(r.Context(), identifier)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.Metrics.IncLogin(metrics.OutcomeInvalid)
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "Matrícula inválida")
		case errors.Is(err, domain.ErrUnauthenticated):
			c.Metrics.IncLogin(metrics.OutcomeRejected)
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Matrícula no registrada")
		default:
			c.Metrics.IncLogin(metrics.OutcomeError)
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Error interno")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(domain.CredentialTTL / time.Second),
		Expires:  time.Now().Add(domain.CredentialTTL),
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	c.Metrics.IncLogin(metrics.OutcomeSuccess)
	c.Logger.InfoContext(r.Context(), "member logged in", "matricula", member.Identifier, "rol", member.Role)
	h.WriteSuccess(w)
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.SuccessResponse
// @Router /logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	h.WriteSuccess(w)
}
