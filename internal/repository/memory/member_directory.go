package memory

import (
	"context"

	"clubevents/internal/domain"
)

// MemberDirectory is an immutable index of members by identifier. It is built
// once from a roster and only read afterwards, so lookups take no lock.
type MemberDirectory struct {
	byID    map[int64]*domain.Member
	ordered []*domain.Member
}

// NewMemberDirectory indexes members. When an identifier repeats, the first
// occurrence wins; nil entries and non-positive identifiers are ignored.
func NewMemberDirectory(members []*domain.Member) *MemberDirectory {
	d := &MemberDirectory{
		byID:    make(map[int64]*domain.Member, len(members)),
		ordered: make([]*domain.Member, 0, len(members)),
	}
	for _, m := range members {
		if m == nil || m.Identifier <= 0 {
			continue
		}
		if _, exists := d.byID[m.Identifier]; exists {
			continue
		}
		cp := *m
		d.byID[m.Identifier] = &cp
		d.ordered = append(d.ordered, &cp)
	}
	return d
}

// FindByIdentifier returns a copy of the member or domain.ErrNotFound.
func (d *MemberDirectory) FindByIdentifier(_ context.Context, identifier int64) (*domain.Member, error) {
	m, ok := d.byID[identifier]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// Len returns the number of loaded members.
func (d *MemberDirectory) Len() int {
	return len(d.ordered)
}

// Identifiers returns up to n identifiers in roster order; n <= 0 returns all.
func (d *MemberDirectory) Identifiers(n int) []int64 {
	if n <= 0 || n > len(d.ordered) {
		n = len(d.ordered)
	}
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = d.ordered[i].Identifier
	}
	return ids
}
