package board

import (
	domain "github.com/example/kanban-backend/domain/board"
)

// CreateBoardRequest is the request for the create-board service.
type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id"`
}

// ListBoardsRequest is the request for the list-boards service.
type ListBoardsRequest struct {
	UserID string `json:"user_id"`
}

// ListBoardsResponse is the response for the list-boards service.
type ListBoardsResponse struct {
	Boards []domain.Board `json:"boards"`
	Count  int            `json:"count"`
}

// GetBoardRequest is the request for the get-board service.
type GetBoardRequest struct {
	BoardID string `json:"board_id"`
}

// UpdateBoardRequest is the request for the update-board service. Nil fields
// are left untouched.
type UpdateBoardRequest struct {
	BoardID     string  `json:"board_id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteBoardRequest is the request for the delete-board service.
type DeleteBoardRequest struct {
	BoardID string `json:"board_id"`
}

// DeleteBoardResponse is the response for the delete-board service.
type DeleteBoardResponse struct {
	Deleted bool   `json:"deleted"`
	BoardID string `json:"board_id"`
}

// CreateColumnRequest is the request for the create-column service. A nil
// position appends.
type CreateColumnRequest struct {
	Title    string `json:"title"`
	BoardID  string `json:"board_id"`
	Position *int   `json:"position,omitempty"`
}

// ListColumnsRequest is the request for the list-columns service.
type ListColumnsRequest struct {
	BoardID string `json:"board_id"`
}

// ListColumnsResponse is the response for the list-columns service.
type ListColumnsResponse struct {
	Columns []domain.Column `json:"columns"`
	Count   int             `json:"count"`
}

// GetColumnRequest is the request for the get-column service.
type GetColumnRequest struct {
	ColumnID string `json:"column_id"`
}

// UpdateColumnRequest is the request for the update-column service.
type UpdateColumnRequest struct {
	ColumnID string  `json:"column_id"`
	Title    *string `json:"title,omitempty"`
}

// MoveColumnRequest is the request for the move-column service.
type MoveColumnRequest struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

// DeleteColumnRequest is the request for the delete-column service.
type DeleteColumnRequest struct {
	ColumnID string `json:"column_id"`
}

// DeleteColumnResponse is the response for the delete-column service.
type DeleteColumnResponse struct {
	Deleted  bool   `json:"deleted"`
	ColumnID string `json:"column_id"`
}
