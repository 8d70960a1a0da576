package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clubevents/internal/domain"
)

// EventRegistry keeps events in process memory. A single mutex serializes id
// assignment, creation and the check-then-append of registrations; readers
// receive deep copies.
type EventRegistry struct {
	mu     sync.Mutex
	nextID int64
	events []*domain.Event
	byID   map[int64]*domain.Event
	now    func() time.Time
}

// NewEventRegistry returns an empty registry whose first event gets id 1.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{
		nextID: 1,
		byID:   make(map[int64]*domain.Event),
		now:    time.Now,
	}
}

// Create validates in and stores it under the next sequential id.
func (r *EventRegistry) Create(_ context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	event := domain.NewEvent(in, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, event)
	r.byID[event.ID] = event
	return event.Clone(), nil
}

// List returns copies of all events in creation order.
func (r *EventRegistry) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Event, len(r.events))
	for i, e := range r.events {
		out[i] = e.Clone()
	}
	return out, nil
}

// GetByID returns a copy of the event, or domain.ErrNotFound.
func (r *EventRegistry) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e.Clone(), nil
}

// Register checks the selection and the duplicate triple and appends reg
// under one lock, so concurrent identical registrations cannot both succeed.
func (r *EventRegistry) Register(_ context.Context, eventID int64, reg domain.Registration) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := e.ValidateSelection(reg.TimeSlot, reg.Role); err != nil {
		return nil, err
	}
	if e.HasRegistration(reg) {
		return nil, fmt.Errorf("%w: already registered for %q as %q", domain.ErrConflict, reg.TimeSlot, reg.Role)
	}
	e.Registrations = append(e.Registrations, reg)
	return e.Clone(), nil
}
