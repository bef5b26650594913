package api

import (
	domainboard "github.com/example/kanban-backend/domain/board"
	"github.com/example/kanban-backend/modules/board"
	"github.com/gofiber/fiber/v2"
)

// CreateBoard creates a board owned by the authenticated user, together with
// its default columns and owner membership.
func (h *Handlers) CreateBoard(c *fiber.Ctx) error {
	claims, ok := h.principal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	var req board.CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Board name is required")
	}
	req.OwnerID = claims.UserID

	var resp domainboard.Board
	if err := call(c, h.module.boardContainer, "create-board", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListBoards returns the boards the authenticated user owns or belongs to.
func (h *Handlers) ListBoards(c *fiber.Ctx) error {
	claims, ok := h.principal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	req := board.ListBoardsRequest{UserID: claims.UserID}
	var resp board.ListBoardsResponse
	if err := call(c, h.module.boardContainer, "list-boards", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetBoard returns one board with its columns and tasks.
func (h *Handlers) GetBoard(c *fiber.Ctx) error {
	req := board.GetBoardRequest{BoardID: c.Params("id")}
	var resp domainboard.Board
	if err := call(c, h.module.boardContainer, "get-board", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateBoard applies a partial update to a board.
func (h *Handlers) UpdateBoard(c *fiber.Ctx) error {
	var req board.UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.BoardID = c.Params("id")

	var resp domainboard.Board
	if err := call(c, h.module.boardContainer, "update-board", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteBoard removes a board and everything it owns.
func (h *Handlers) DeleteBoard(c *fiber.Ctx) error {
	req := board.DeleteBoardRequest{BoardID: c.Params("id")}
	var resp board.DeleteBoardResponse
	if err := call(c, h.module.boardContainer, "delete-board", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateColumn adds a column to a board at the requested position.
func (h *Handlers) CreateColumn(c *fiber.Ctx) error {
	var req board.CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.BoardID == "" {
		return badRequest(c, "Column title and board_id are required")
	}

	var resp domainboard.Column
	if err := call(c, h.module.boardContainer, "create-column", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListColumns returns a board's columns ordered by position, tasks nested.
func (h *Handlers) ListColumns(c *fiber.Ctx) error {
	boardID := c.Query("board_id")
	if boardID == "" {
		return badRequest(c, "board_id query parameter is required")
	}

	req := board.ListColumnsRequest{BoardID: boardID}
	var resp board.ListColumnsResponse
	if err := call(c, h.module.boardContainer, "list-columns", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetColumn returns one column with its tasks.
func (h *Handlers) GetColumn(c *fiber.Ctx) error {
	req := board.GetColumnRequest{ColumnID: c.Params("id")}
	var resp domainboard.Column
	if err := call(c, h.module.boardContainer, "get-column", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateColumn applies a partial update to a column.
func (h *Handlers) UpdateColumn(c *fiber.Ctx) error {
	var req board.UpdateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ColumnID = c.Params("id")

	var resp domainboard.Column
	if err := call(c, h.module.boardContainer, "update-column", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// MoveColumn resequences a board's columns so the subject lands at the
// requested position.
func (h *Handlers) MoveColumn(c *fiber.Ctx) error {
	var req board.MoveColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ColumnID = c.Params("id")

	var resp domainboard.Column
	if err := call(c, h.module.boardContainer, "move-column", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteColumn removes a column and its tasks.
func (h *Handlers) DeleteColumn(c *fiber.Ctx) error {
	req := board.DeleteColumnRequest{ColumnID: c.Params("id")}
	var resp board.DeleteColumnResponse
	if err := call(c, h.module.boardContainer, "delete-column", &req, &resp); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
