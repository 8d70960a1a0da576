package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string   `json:"nombre" example:"Feria de clubes"`
	Description string   `json:"descripcion" example:"Stand del club en el coliseo"`
	TimeSlots   []string `json:"horarios" example:"08:00,09:00"`
	RoleOptions []string `json:"roles" example:"Host,Speaker"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	if strings.TrimSpace(c.Name) == "" || len(c.TimeSlots) == 0 || len(c.RoleOptions) == 0 {
		return []string{"Faltan campos obligatorios"}
	}
	return nil
}

// RegisterRequest is the request body for POST /events/{id}/register.
type RegisterRequest struct {
	TimeSlot string `json:"horario" example:"08:00"`
	Role     string `json:"rol" example:"Host"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Metrics *metrics.Metrics
}

func NewEventController(logger *slog.Logger, svc domain.EventService, m *metrics.Metrics) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Metrics: m,
	}
}

// parseEventID reads the {id} path value. Anything that is not a positive
// integer cannot name an event.
func parseEventID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Error interno")
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event with its time slots and roles. Restricted to privileged roles.
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.ErrorResponse "error.code: forbidden"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "No autenticado")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		TimeSlots:   req.TimeSlots,
		RoleOptions: req.RoleOptions,
		CreatedBy:   id.Identifier,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Datos del evento inválidos: "+err.Error())
			return
		}
		c.fail(w, r, err)
		return
	}
	c.Metrics.IncEventCreated()
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event with its registrations, in creation order.
// @Tags events
// @Produce json
// @Security CookieAuth
// @Success 200 {array} domain.Event
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param id path int true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parseEventID(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado")
			return
		}
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated member for one (time slot, role) pair of the event.
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Event ID"
// @Param body body RegisterRequest true "Chosen slot and role"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request (invalid slot, invalid role or already registered)"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /events/{id}/register [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "No autenticado")
		return
	}
	eventID, ok := parseEventID(r)
	if !ok {
		c.Metrics.IncRegistration(metrics.OutcomeNotFound)
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado")
		return
	}
	if _, err := c.Service.GetEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Metrics.IncRegistration(metrics.OutcomeNotFound)
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado")
			return
		}
		c.Metrics.IncRegistration(metrics.OutcomeError)
		c.fail(w, r, err)
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req, helpers.AllowUnknownFields()) {
		c.Metrics.IncRegistration(metrics.OutcomeInvalid)
		return
	}

	_, err := c.Service.Register(r.Context(), eventID, id.Identifier, req.TimeSlot, req.Role)
	switch {
	case err == nil:
		c.Metrics.IncRegistration(metrics.OutcomeSuccess)
		helpers.WriteSuccess(w)
	case errors.Is(err, domain.ErrNotFound):
		c.Metrics.IncRegistration(metrics.OutcomeNotFound)
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Evento no encontrado")
	case errors.Is(err, domain.ErrUnknownTimeSlot):
		c.Metrics.IncRegistration(metrics.OutcomeInvalid)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Horario inválido")
	case errors.Is(err, domain.ErrUnknownRole):
		c.Metrics.IncRegistration(metrics.OutcomeInvalid)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Rol inválido para este evento")
	case errors.Is(err, domain.ErrConflict):
		c.Metrics.IncRegistration(metrics.OutcomeDuplicate)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Ya estás inscrito en ese turno")
	case errors.Is(err, domain.ErrValidation):
		c.Metrics.IncRegistration(metrics.OutcomeInvalid)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Metrics.IncRegistration(metrics.OutcomeError)
		c.fail(w, r, err)
	}
}
