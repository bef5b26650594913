package api

import (
	domainmember "github.com/example/kanban-backend/domain/member"
	"github.com/example/kanban-backend/modules/member"
	"github.com/gofiber/fiber/v2"
)

// AddMember either inserts a membership directly (owner role) or sends an
// invitation notification. The response mirrors the service's tagged result.
func (h *Handlers) AddMember(c *fiber.Ctx) error {
	claims, ok := h.principal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	var req member.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.BoardID == "" || req.UserID == "" {
		return badRequest(c, "board_id and user_id are required")
	}
	req.InviterID = claims.UserID

	var resp member.AddMemberResponse
	if err := call(c, h.module.memberContainer, "add-member", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RequestMembership invites a user, addressed by email, to a board.
func (h *Handlers) RequestMembership(c *fiber.Ctx) error {
	claims, ok := h.principal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	var req member.RequestMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.BoardID == "" {
		return badRequest(c, "email and board_id are required")
	}
	req.InviterID = claims.UserID

	var resp member.RequestMembershipResponse
	if err := call(c, h.module.memberContainer, "request-membership", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AcceptInvitation converts a pending invitation into a membership.
func (h *Handlers) AcceptInvitation(c *fiber.Ctx) error {
	req := member.AcceptInvitationRequest{NotificationID: c.Params("notification_id")}
	var resp domainmember.BoardMember
	if err := call(c, h.module.memberContainer, "accept-invitation", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListMembers returns a board's memberships with their users embedded.
func (h *Handlers) ListMembers(c *fiber.Ctx) error {
	boardID := c.Query("board_id")
	if boardID == "" {
		return badRequest(c, "board_id query parameter is required")
	}

	req := member.ListMembersRequest{BoardID: boardID}
	var resp member.ListMembersResponse
	if err := call(c, h.module.memberContainer, "list-members", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetMember returns one membership row.
func (h *Handlers) GetMember(c *fiber.Ctx) error {
	req := member.GetMemberRequest{MemberID: c.Params("id")}
	var resp domainmember.BoardMember
	if err := call(c, h.module.memberContainer, "get-member", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateMember changes a member's role.
func (h *Handlers) UpdateMember(c *fiber.Ctx) error {
	var req member.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.MemberID = c.Params("id")
	if req.Role == "" {
		return badRequest(c, "role is required")
	}

	var resp domainmember.BoardMember
	if err := call(c, h.module.memberContainer, "update-member", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// RemoveMember deletes a membership row.
func (h *Handlers) RemoveMember(c *fiber.Ctx) error {
	req := member.RemoveMemberRequest{MemberID: c.Params("id")}
	var resp member.RemoveMemberResponse
	if err := call(c, h.module.memberContainer, "remove-member", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
