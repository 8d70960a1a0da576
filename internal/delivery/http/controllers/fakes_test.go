package controllers

import (
	"context"
	"io"
	"log/slog"

	"clubevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token      string
	member     *domain.Member
	loginErr   error
	profileErr error
	lastLogin  int64
}

func (f *fakeAuthService) Login(_ context.Context, identifier int64) (string, *domain.Member, error) {
	f.lastLogin = identifier
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.member, nil
}

func (f *fakeAuthService) Profile(_ context.Context, identifier int64) (*domain.Member, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.member, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event       *domain.Event
	events      []*domain.Event
	createErr   error
	listErr     error
	getErr      error
	registerErr error
	lastCreate  domain.CreateEventInput
	lastGetID   int64
	lastReg     struct {
		eventID, member int64
		slot, role      string
	}
}

func (f *fakeEventService) CreateEvent(_ context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastCreate = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.event, nil
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastGetID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) Register(_ context.Context, eventID, member int64, slot, role string) (*domain.Registration, error) {
	f.lastReg.eventID, f.lastReg.member, f.lastReg.slot, f.lastReg.role = eventID, member, slot, role
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.Registration{MemberIdentifier: member, Role: role, TimeSlot: slot}, nil
}

// fakeDirectory implements domain.MemberDirectory.
type fakeDirectory struct{ n int }

func (f fakeDirectory) FindByIdentifier(context.Context, int64) (*domain.Member, error) {
	return nil, domain.ErrNotFound
}

func (f fakeDirectory) Len() int { return f.n }
