package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clubevents/internal/domain"

	"github.com/lib/pq"
)

const undefinedTable = "42P01"

type rosterRepository struct {
	DB *sql.DB
}

// NewRosterRepository returns a roster source backed by the members table.
func NewRosterRepository(db *sql.DB) domain.RosterSource {
	return &rosterRepository{DB: db}
}

func (r *rosterRepository) Load(ctx context.Context) ([]*domain.Member, error) {
	query := `
		SELECT matricula, nombres, apellidos, correo, cargo
		FROM members
		ORDER BY matricula
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == undefinedTable {
			return nil, fmt.Errorf("%w: members table does not exist", domain.ErrSourceMissing)
		}
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var (
			id                         int64
			given, family, email, role sql.NullString
		)
		if err := rows.Scan(&id, &given, &family, &email, &role); err != nil {
			return nil, err
		}
		if id <= 0 {
			continue
		}
		name := strings.TrimSpace(strings.TrimSpace(given.String) + " " + strings.TrimSpace(family.String))
		members = append(members, domain.NewMember(id, name, strings.TrimSpace(email.String), role.String))
	}
	return members, rows.Err()
}
