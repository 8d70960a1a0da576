package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"clubevents/internal/domain"
)

// Header names recognised in the roster, compared after trimming and lowercasing.
var (
	identifierHeaders = []string{"matricula", "matrícula"}
	givenNameHeaders  = []string{"nombres"}
	familyNameHeaders = []string{"apellidos"}
	emailHeaders      = []string{"correo espol", "correo"}
	roleHeaders       = []string{"cargo dentro del club", "cargo"}
)

type columnIndex struct {
	identifier, givenName, familyName, email, role int
}

func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}
	find := func(names []string) int {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i
			}
		}
		return -1
	}
	idx := columnIndex{
		identifier: find(identifierHeaders),
		givenName:  find(givenNameHeaders),
		familyName: find(familyNameHeaders),
		email:      find(emailHeaders),
		role:       find(roleHeaders),
	}
	if idx.identifier < 0 {
		return idx, fmt.Errorf("%w: header has no matricula column", domain.ErrInvalidRoster)
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseIdentifier accepts integer text and integral float text ("1001", "1001.0").
func parseIdentifier(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ParseRows maps a header row plus data rows to members. Blank rows are
// ignored; rows without a usable identifier are counted in skipped.
func ParseRows(rows [][]string) (members []*domain.Member, skipped int, err error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: roster has no header row", domain.ErrInvalidRoster)
	}
	idx, err := indexColumns(rows[0])
	if err != nil {
		return nil, 0, err
	}
	members = make([]*domain.Member, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		id, ok := parseIdentifier(cell(row, idx.identifier))
		if !ok {
			skipped++
			continue
		}
		name := strings.TrimSpace(cell(row, idx.givenName) + " " + cell(row, idx.familyName))
		members = append(members, domain.NewMember(id, name, cell(row, idx.email), cell(row, idx.role)))
	}
	return members, skipped, nil
}
