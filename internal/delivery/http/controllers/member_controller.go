package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "clubevents/internal/delivery/http/helpers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
)

// ProfileResponse is the response body for GET /profile.
type ProfileResponse struct {
	Member *domain.Member `json:"usuario"`
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Members int    `json:"members"`
}

type MemberController struct {
	Logger    *slog.Logger
	Service   domain.AuthService
	Directory domain.MemberDirectory
}

func NewMemberController(logger *slog.Logger, svc domain.AuthService, directory domain.MemberDirectory) *MemberController {
	return &MemberController{
		Logger:    logger,
		Service:   svc,
		Directory: directory,
	}
}

// Profile godoc
// @Summary Current member profile
// @Description Returns the roster record of the authenticated member.
// @Tags members
// @Produce json
// @Security CookieAuth
// @Success 200 {object} controllers.ProfileResponse
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /profile [get]
func (c *MemberController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "No autenticado")
		return
	}
	member, err := c.Service.Profile(r.Context(), id.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "Usuario no encontrado")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Error interno")
		return
	}
	h.WriteJSON(w, http.StatusOK, ProfileResponse{Member: member})
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Router /healthz [get]
func (c *MemberController) Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Members: c.Directory.Len()})
}
