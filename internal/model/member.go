// Package model holds the domain records and the request payloads the HTTP
// layer binds into.
package model

import (
	"fmt"
	"time"
)

// Member is a registrant's identity and licensing record.
//
// ID is assigned by the store on creation and never reused. CIN and
// MembershipNumber are unique across all members.
type Member struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	CIN               string    `json:"cin"`
	Nationality       string    `json:"nationality"`
	AccessionDate     time.Time `json:"accessionDate"`
	LicenceExpiryDate time.Time `json:"licenceExpiryDate"`
	MembershipNumber  int32     `json:"membershipNumber"`
}

// NewMember builds an unpersisted member from every field except the id.
// Dates are normalized with StoredTime.
func NewMember(firstName, lastName, cin, nationality string, accessionDate, licenceExpiryDate time.Time, membershipNumber int32) Member {
	return Member{
		FirstName:         firstName,
		LastName:          lastName,
		CIN:               cin,
		Nationality:       nationality,
		AccessionDate:     StoredTime(accessionDate),
		LicenceExpiryDate: StoredTime(licenceExpiryDate),
		MembershipNumber:  membershipNumber,
	}
}

// StoredTime converts t to the form the members table keeps: UTC with
// microsecond precision. The date columns carry no zone.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// FullName joins first and last name.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// LicenceExpiresWithin reports whether the licence expires between now and
// now+window, both inclusive.
func (m Member) LicenceExpiresWithin(now time.Time, window time.Duration) bool {
	return !m.LicenceExpiryDate.Before(now) && !m.LicenceExpiryDate.After(now.Add(window))
}

func (m Member) String() string {
	return fmt.Sprintf(
		"Member(id=%d, firstName=%s, lastName=%s, cin=%s, nationality=%s, accessionDate=%s, licenceExpiryDate=%s, membershipNumber=%d)",
		m.ID,
		m.FirstName,
		m.LastName,
		m.CIN,
		m.Nationality,
		m.AccessionDate.Format(time.RFC3339),
		m.LicenceExpiryDate.Format(time.RFC3339),
		m.MembershipNumber,
	)
}
