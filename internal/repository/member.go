package repository

import "github.com/deppfellow/maska/internal/model"

// MemberTable maps model.Member onto the members table created by
// migration 001_create_members.sql.
func MemberTable() Table[model.Member] {
	return Table[model.Member]{
		Name: "members",
		Key:  "id",
		Columns: []string{
			"first_name",
			"last_name",
			"cin",
			"nationality",
			"accession_date",
			"licence_expiry_date",
			"membership_number",
		},
		ID:    func(m *model.Member) int64 { return m.ID },
		SetID: func(m *model.Member, id int64) { m.ID = id },
		Values: func(m *model.Member) []any {
			return []any{
				m.FirstName,
				m.LastName,
				m.CIN,
				m.Nationality,
				model.StoredTime(m.AccessionDate),
				model.StoredTime(m.LicenceExpiryDate),
				m.MembershipNumber,
			}
		},
		Targets: func(m *model.Member) []any {
			return []any{
				&m.ID,
				&m.FirstName,
				&m.LastName,
				&m.CIN,
				&m.Nationality,
				&m.AccessionDate,
				&m.LicenceExpiryDate,
				&m.MembershipNumber,
			}
		},
		Unique: []UniqueKey[model.Member]{
			{
				Constraint: "members_cin_key",
				Column:     "cin",
				Value:      func(m *model.Member) any { return m.CIN },
			},
			{
				Constraint: "members_membership_number_key",
				Column:     "membership_number",
				Value:      func(m *model.Member) any { return m.MembershipNumber },
			},
		},
	}
}
