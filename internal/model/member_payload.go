package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON name so error responses match
// the request body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			if param := f.Tag.Get("param"); param != "" {
				return param
			}
			return f.Name
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// MemberFields is the full set of writable member attributes. Updates
// replace every field; there is no partial patch.
type MemberFields struct {
	FirstName         string    `json:"firstName" validate:"required,max=100"`
	LastName          string    `json:"lastName" validate:"required,max=100"`
	CIN               string    `json:"cin" validate:"required,max=32"`
	Nationality       string    `json:"nationality" validate:"required,max=64"`
	AccessionDate     time.Time `json:"accessionDate" validate:"required"`
	LicenceExpiryDate time.Time `json:"licenceExpiryDate" validate:"required"`
	MembershipNumber  int32     `json:"membershipNumber" validate:"required"`
}

// Member converts the payload into a record carrying the given id.
func (f MemberFields) Member(id int64) Member {
	m := NewMember(f.FirstName, f.LastName, f.CIN, f.Nationality, f.AccessionDate, f.LicenceExpiryDate, f.MembershipNumber)
	m.ID = id
	return m
}

// CreateMemberPayload is the body of POST /api/v1/members.
type CreateMemberPayload struct {
	MemberFields
}

func (p *CreateMemberPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateMemberPayload is the body of PUT /api/v1/members/:id.
type UpdateMemberPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	MemberFields
}

func (p *UpdateMemberPayload) Validate() error {
	return validate.Struct(p)
}

// GetMemberPayload addresses a single member by id.
type GetMemberPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (p *GetMemberPayload) Validate() error {
	return validate.Struct(p)
}

// DeleteMemberPayload addresses the member to remove.
type DeleteMemberPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (p *DeleteMemberPayload) Validate() error {
	return validate.Struct(p)
}

// ListMembersPayload carries no parameters.
type ListMembersPayload struct{}

func (p *ListMembersPayload) Validate() error {
	return nil
}
