package services

import (
	"context"
	"errors"
	"sync"

	"clubevents/internal/domain"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	identity *domain.Identity
	err      error
}

func (f *fakeTokenVerifier) Verify(_ string) (*domain.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err        error
	lastID     int64
	lastRole   domain.Role
	issueCalls int
}

func (f *fakeTokenIssuer) Issue(identifier int64, role domain.Role) (string, error) {
	f.issueCalls++
	f.lastID, f.lastRole = identifier, role
	if f.err != nil {
		return "", f.err
	}
	return "token-" + string(role), nil
}

// fakeMemberDirectory implements domain.MemberDirectory for tests.
type fakeMemberDirectory struct {
	members map[int64]*domain.Member
	err     error
}

func newFakeMemberDirectory(members ...*domain.Member) *fakeMemberDirectory {
	f := &fakeMemberDirectory{members: make(map[int64]*domain.Member)}
	for _, m := range members {
		f.members[m.Identifier] = m
	}
	return f
}

func (f *fakeMemberDirectory) FindByIdentifier(_ context.Context, id int64) (*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMemberDirectory) Len() int { return len(f.members) }

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.RegistrationConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(_ context.Context, data *domain.RegistrationConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeMailer implements domain.Mailer for tests.
type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

// fakeRenderer implements domain.EmailTemplateRenderer for tests.
type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(name string, _ any) (string, string, string, error) {
	f.lastTemplate = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

var errBoom = errors.New("boom")
