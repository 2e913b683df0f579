package handler

import (
	"github.com/deppfellow/maska/internal/errs"
	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/server"
	"github.com/deppfellow/maska/internal/service"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	Handler
	members *service.MemberService
}

func NewMemberHandler(s *server.Server, members *service.MemberService) *MemberHandler {
	return &MemberHandler{
		Handler: NewHandler(s),
		members: members,
	}
}

// MembersPage is the data behind the members/index.html view.
type MembersPage struct {
	Members []model.Member
}

// ListMembersPage makes sure the sample members exist, then lists everyone.
func (h *MemberHandler) ListMembersPage(c echo.Context, _ *model.ListMembersPayload) (MembersPage, error) {
	ctx := c.Request().Context()

	if _, err := h.members.Seed(ctx); err != nil {
		return MembersPage{}, err
	}

	members, err := h.members.FindAll(ctx)
	if err != nil {
		return MembersPage{}, err
	}

	return MembersPage{Members: members}, nil
}

func (h *MemberHandler) ListMembers(c echo.Context, _ *model.ListMembersPayload) ([]model.Member, error) {
	members, err := h.members.FindAll(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []model.Member{}
	}
	return members, nil
}

func (h *MemberHandler) CreateMember(c echo.Context, p *model.CreateMemberPayload) (model.Member, error) {
	return h.members.Save(c.Request().Context(), p.Member(0))
}

func (h *MemberHandler) GetMember(c echo.Context, p *model.GetMemberPayload) (model.Member, error) {
	m, found, err := h.members.FindByID(c.Request().Context(), p.ID)
	if err != nil {
		return model.Member{}, err
	}
	if !found {
		return model.Member{}, errs.NewNotFoundError("Member not found", true, nil)
	}
	return m, nil
}

// UpdateMember replaces every field of the member named in the path.
func (h *MemberHandler) UpdateMember(c echo.Context, p *model.UpdateMemberPayload) (model.Member, error) {
	return h.members.Update(c.Request().Context(), p.Member(p.ID))
}

// DeleteMember removes the member and answers with the removed record.
func (h *MemberHandler) DeleteMember(c echo.Context, p *model.DeleteMemberPayload) (model.Member, error) {
	return h.members.Delete(c.Request().Context(), model.Member{ID: p.ID})
}
