package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Event is an activity members register into by picking a time slot and a role.
// swagger:model Event
type Event struct {
	ID            int64          `json:"id"`
	Name          string         `json:"nombre"`
	Description   string         `json:"descripcion"`
	TimeSlots     []string       `json:"horarios"`
	RoleOptions   []string       `json:"roles"`
	Registrations []Registration `json:"inscripciones"`
	CreatedBy     int64          `json:"creado_por,omitempty"`
	CreatedAt     time.Time      `json:"creado_en"`
}

// Registration is a member's claim on one (time slot, role) pair of an event.
// swagger:model Registration
type Registration struct {
	MemberIdentifier int64  `json:"matricula"`
	Role             string `json:"rol"`
	TimeSlot         string `json:"horario"`
}

// CreateEventInput carries the fields needed to create an event.
type CreateEventInput struct {
	Name        string
	Description string
	TimeSlots   []string
	RoleOptions []string
	CreatedBy   int64
}

// Normalize trims every field in place.
func (in *CreateEventInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.TimeSlots = trimAll(in.TimeSlots)
	in.RoleOptions = trimAll(in.RoleOptions)
}

// Validate returns an ErrValidation-wrapped error describing the first problem found.
func (in CreateEventInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateOptions("time slot", in.TimeSlots); err != nil {
		return err
	}
	return validateOptions("role", in.RoleOptions)
}

func validateOptions(kind string, values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: at least one %s is required", ErrValidation, kind)
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return fmt.Errorf("%w: %s cannot be blank", ErrValidation, kind)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: duplicate %s %q", ErrValidation, kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// NewEvent builds an event from validated input. The ID is set by the registry.
func NewEvent(in CreateEventInput, createdAt time.Time) *Event {
	return &Event{
		Name:          in.Name,
		Description:   in.Description,
		TimeSlots:     slices.Clone(in.TimeSlots),
		RoleOptions:   slices.Clone(in.RoleOptions),
		Registrations: []Registration{},
		CreatedBy:     in.CreatedBy,
		CreatedAt:     createdAt,
	}
}

// ValidateSelection checks that slot and role are offered by the event.
func (e *Event) ValidateSelection(slot, role string) error {
	if !slices.Contains(e.TimeSlots, slot) {
		return fmt.Errorf("%w: %q", ErrUnknownTimeSlot, slot)
	}
	if !slices.Contains(e.RoleOptions, role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}

// HasRegistration reports whether the exact (member, slot, role) triple is already taken.
func (e *Event) HasRegistration(reg Registration) bool {
	return slices.Contains(e.Registrations, reg)
}

// Clone returns a deep copy safe to hand out while the original keeps changing.
func (e *Event) Clone() *Event {
	cp := *e
	cp.TimeSlots = slices.Clone(e.TimeSlots)
	cp.RoleOptions = slices.Clone(e.RoleOptions)
	cp.Registrations = slices.Clone(e.Registrations)
	if cp.Registrations == nil {
		cp.Registrations = []Registration{}
	}
	return &cp
}

// EventRegistry stores events and their registrations.
type EventRegistry interface {
	Create(ctx context.Context, in CreateEventInput) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	// Register appends a registration. It returns ErrNotFound, ErrValidation or
	// ErrConflict; the check and the append are atomic.
	Register(ctx context.Context, eventID int64, reg Registration) (*Event, error)
}

// EventService is the business logic behind the event endpoints.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	Register(ctx context.Context, eventID, memberIdentifier int64, timeSlot, role string) (*Registration, error)
}

// AuthService handles login and profile lookups.
type AuthService interface {
	Login(ctx context.Context, identifier int64) (token string, member *Member, err error)
	Profile(ctx context.Context, identifier int64) (*Member, error)
}
