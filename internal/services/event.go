package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clubevents/internal/domain"
)

type eventService struct {
	registry     domain.EventRegistry
	members      domain.MemberDirectory
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewEventService creates an EventService over the given registry. members and
// emailService are only used for registration confirmations; emailService may be nil.
func NewEventService(
	registry domain.EventRegistry,
	members domain.MemberDirectory,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		registry:     registry,
		members:      members,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	event, err := s.registry.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "created_by", in.CreatedBy)
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.registry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Register(ctx context.Context, eventID, memberIdentifier int64, timeSlot, role string) (*domain.Registration, error) {
	reg := domain.Registration{
		MemberIdentifier: memberIdentifier,
		Role:             role,
		TimeSlot:         timeSlot,
	}
	event, err := s.registry.Register(ctx, eventID, reg)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	s.confirm(ctx, event, reg)
	return &reg, nil
}

// confirm emails the member about a new registration. Failures are logged only.
func (s *eventService) confirm(ctx context.Context, event *domain.Event, reg domain.Registration) {
	if s.emailService == nil || s.members == nil {
		return
	}
	member, err := s.members.FindByIdentifier(ctx, reg.MemberIdentifier)
	if err != nil || member.Email == "" {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:      member.Email,
		MemberName: member.Name,
		EventName:  event.Name,
		TimeSlot:   reg.TimeSlot,
		Role:       reg.Role,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent", "event_id", event.ID, "matricula", reg.MemberIdentifier, "err", err)
	}
}
