package domain

import "context"

// Member is a club member loaded from the roster.
// swagger:model Member
type Member struct {
	Identifier int64  `json:"matricula"`
	Name       string `json:"nombre"`
	Email      string `json:"correo"`
	Role       Role   `json:"rol"`
}

// NewMember returns a Member with a normalized role.
func NewMember(identifier int64, name, email, role string) *Member {
	return &Member{
		Identifier: identifier,
		Name:       name,
		Email:      email,
		Role:       NormalizeRole(role),
	}
}

// RosterSource supplies the member list once at startup.
type RosterSource interface {
	Load(ctx context.Context) ([]*Member, error)
}

// MemberDirectory is the read-only lookup over loaded members.
type MemberDirectory interface {
	FindByIdentifier(ctx context.Context, identifier int64) (*Member, error)
	Len() int
}
