package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var president = &domain.Identity{Identifier: 1001, Role: "Presidenta"}

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:            1,
		Name:          "Feria",
		TimeSlots:     []string{"08:00", "09:00"},
		RoleOptions:   []string{"Host"},
		Registrations: []domain.Registration{},
		CreatedBy:     1001,
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var body helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body.Error
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		identity    *domain.Identity
		createErr   error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantInput   *domain.CreateEventInput
	}{
		{
			name:       "success",
			body:       `{"nombre":"Feria","descripcion":"Stand","horarios":["08:00","09:00"],"roles":["Host"]}`,
			identity:   president,
			wantStatus: http.StatusCreated,
			wantInput: &domain.CreateEventInput{
				Name: "Feria", Description: "Stand",
				TimeSlots: []string{"08:00", "09:00"}, RoleOptions: []string{"Host"},
				CreatedBy: 1001,
			},
		},
		{
			name:        "missing name",
			body:        `{"horarios":["08:00"],"roles":["Host"]}`,
			identity:    president,
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "Faltan campos obligatorios",
		},
		{
			name:        "empty slots",
			body:        `{"nombre":"Feria","horarios":[],"roles":["Host"]}`,
			identity:    president,
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "Faltan campos obligatorios",
		},
		{
			name:       "slots not an array",
			body:       `{"nombre":"Feria","horarios":"08:00","roles":["Host"]}`,
			identity:   president,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "domain validation",
			body:       `{"nombre":"Feria","horarios":["08:00","08:00"],"roles":["Host"]}`,
			identity:   president,
			createErr:  fmt.Errorf("%w: duplicate time slot", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "no identity",
			body:       `{"nombre":"Feria","horarios":["08:00"],"roles":["Host"]}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "service error",
			body:       `{"nombre":"Feria","horarios":["08:00"],"roles":["Host"]}`,
			identity:   president,
			createErr:  assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			fake := &fakeEventService{event: sampleEvent(), createErr: tt.createErr}
			ctrl := NewEventController(testLogger, fake, m)

			req := httptest.NewRequest(http.MethodPost, "http://test/events", strings.NewReader(tt.body))
			if tt.identity != nil {
				req = req.WithContext(middleware.SetIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()
			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, *tt.wantInput, fake.lastCreate)
				var got domain.Event
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, int64(1), got.ID)
				assert.Equal(t, "Feria", got.Name)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsCreatedTotal))
				return
			}
			apiErr := decodeError(t, rr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
			assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsCreatedTotal))
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		events     []*domain.Event
		listErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "nil list encodes as empty array", wantStatus: http.StatusOK, wantBody: `[]`},
		{name: "events", events: []*domain.Event{sampleEvent()}, wantStatus: http.StatusOK},
		{name: "service error", listErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, &fakeEventService{events: tt.events, listErr: tt.listErr}, nil)

			req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
			rr := httptest.NewRecorder()
			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
			if tt.events != nil {
				var got []map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				require.Len(t, got, 1)
				assert.Equal(t, "Feria", got[0]["nombre"])
				assert.Equal(t, []any{"08:00", "09:00"}, got[0]["horarios"])
				assert.Equal(t, []any{}, got[0]["inscripciones"])
			}
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		getErr     error
		wantStatus int
		wantGetID  int64
	}{
		{name: "found", id: "1", wantStatus: http.StatusOK, wantGetID: 1},
		{name: "unknown", id: "7", getErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantGetID: 7},
		{name: "non numeric", id: "abc", wantStatus: http.StatusNotFound},
		{name: "zero", id: "0", wantStatus: http.StatusNotFound},
		{name: "service error", id: "1", getErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantGetID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{event: sampleEvent(), getErr: tt.getErr}
			ctrl := NewEventController(testLogger, fake, nil)

			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()
			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantGetID, fake.lastGetID)
		})
	}
}

func TestEventController_Register(t *testing.T) {
	member := &domain.Identity{Identifier: 2002, Role: domain.RoleMember}

	tests := []struct {
		name        string
		id          string
		body        string
		identity    *domain.Identity
		getErr      error
		registerErr error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantOutcome string
	}{
		{
			name:        "extra body fields ignored",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Host","extra":1}`,
			identity:    member,
			wantStatus:  http.StatusOK,
			wantOutcome: metrics.OutcomeSuccess,
		},
		{
			name:        "unknown event checked before body",
			id:          "99",
			body:        `{"horario":"08:00","rol":"Host","extra":1}`,
			identity:    member,
			getErr:      domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    helpers.ErrCodeNotFound,
			wantMessage: "Evento no encontrado",
			wantOutcome: metrics.OutcomeNotFound,
		},
		{
			name:        "event lookup failure",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			getErr:      assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    helpers.ErrCodeInternalError,
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "success",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			wantStatus:  http.StatusOK,
			wantOutcome: metrics.OutcomeSuccess,
		},
		{
			name:        "unknown event",
			id:          "99",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			registerErr: domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    helpers.ErrCodeNotFound,
			wantMessage: "Evento no encontrado",
			wantOutcome: metrics.OutcomeNotFound,
		},
		{
			name:        "non numeric id",
			id:          "abc",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			wantStatus:  http.StatusNotFound,
			wantCode:    helpers.ErrCodeNotFound,
			wantMessage: "Evento no encontrado",
			wantOutcome: metrics.OutcomeNotFound,
		},
		{
			name:        "invalid slot",
			id:          "1",
			body:        `{"horario":"10:00","rol":"Host"}`,
			identity:    member,
			registerErr: fmt.Errorf("%w: %q", domain.ErrUnknownTimeSlot, "10:00"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "Horario inválido",
			wantOutcome: metrics.OutcomeInvalid,
		},
		{
			name:        "invalid role",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Speaker"}`,
			identity:    member,
			registerErr: fmt.Errorf("%w: %q", domain.ErrUnknownRole, "Speaker"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "Rol inválido para este evento",
			wantOutcome: metrics.OutcomeInvalid,
		},
		{
			name:        "duplicate",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			registerErr: fmt.Errorf("%w: already registered", domain.ErrConflict),
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "Ya estás inscrito en ese turno",
			wantOutcome: metrics.OutcomeDuplicate,
		},
		{
			name:        "malformed body",
			id:          "1",
			body:        `{"horario":`,
			identity:    member,
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantOutcome: metrics.OutcomeInvalid,
		},
		{
			name:       "no identity",
			id:         "1",
			body:       `{"horario":"08:00","rol":"Host"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:        "service error",
			id:          "1",
			body:        `{"horario":"08:00","rol":"Host"}`,
			identity:    member,
			registerErr: assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    helpers.ErrCodeInternalError,
			wantOutcome: metrics.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			fake := &fakeEventService{getErr: tt.getErr, registerErr: tt.registerErr}
			ctrl := NewEventController(testLogger, fake, m)

			req := httptest.NewRequest(http.MethodPost, "http://test/events/"+tt.id+"/register", strings.NewReader(tt.body))
			req.SetPathValue("id", tt.id)
			if tt.identity != nil {
				req = req.WithContext(middleware.SetIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()
			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantOutcome != "" {
				assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues(tt.wantOutcome)))
			}
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"success":true}`, rr.Body.String())
				assert.Equal(t, int64(1), fake.lastReg.eventID)
				assert.Equal(t, int64(2002), fake.lastReg.member)
				assert.Equal(t, "08:00", fake.lastReg.slot)
				assert.Equal(t, "Host", fake.lastReg.role)
				return
			}
			apiErr := decodeError(t, rr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}
