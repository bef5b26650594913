package board

import (
	"context"
	"log"

	domain "github.com/example/kanban-backend/domain/board"
	"github.com/example/kanban-backend/domain/ordering"
	"github.com/example/kanban-backend/events"
	"github.com/go-monolith/mono"
)

func (m *BoardModule) handleCreateBoard(_ context.Context, req CreateBoardRequest, _ *mono.Msg) (domain.Board, error) {
	board, err := m.repo.Create(req.OwnerID, req.Name, req.Description)
	if err != nil {
		return domain.Board{}, err
	}

	if m.eventBus != nil {
		event := events.BoardCreatedEvent{
			BoardID:   board.ID,
			Name:      board.Name,
			OwnerID:   board.UserID,
			CreatedAt: board.CreatedAt,
		}
		if err := events.BoardCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[board] Warning: failed to publish BoardCreated event for board %s: %v", board.ID, err)
		}
	}
	return *board, nil
}

func (m *BoardModule) handleListBoards(_ context.Context, req ListBoardsRequest, _ *mono.Msg) (ListBoardsResponse, error) {
	boards, err := m.repo.ListForUser(req.UserID)
	if err != nil {
		return ListBoardsResponse{}, err
	}
	return ListBoardsResponse{Boards: boards, Count: len(boards)}, nil
}

func (m *BoardModule) handleGetBoard(_ context.Context, req GetBoardRequest, _ *mono.Msg) (domain.Board, error) {
	board, err := m.repo.FindByID(req.BoardID)
	if err != nil {
		return domain.Board{}, err
	}
	return *board, nil
}

func (m *BoardModule) handleUpdateBoard(_ context.Context, req UpdateBoardRequest, _ *mono.Msg) (domain.Board, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	board, err := m.repo.Update(req.BoardID, fields)
	if err != nil {
		return domain.Board{}, err
	}
	return *board, nil
}

func (m *BoardModule) handleDeleteBoard(_ context.Context, req DeleteBoardRequest, _ *mono.Msg) (DeleteBoardResponse, error) {
	if err := m.repo.Delete(req.BoardID); err != nil {
		return DeleteBoardResponse{Deleted: false, BoardID: req.BoardID}, err
	}
	return DeleteBoardResponse{Deleted: true, BoardID: req.BoardID}, nil
}

func (m *BoardModule) handleCreateColumn(_ context.Context, req CreateColumnRequest, _ *mono.Msg) (domain.Column, error) {
	position := ordering.Append
	if req.Position != nil {
		position = *req.Position
	}
	column, err := m.repo.CreateColumn(req.BoardID, req.Title, position)
	if err != nil {
		return domain.Column{}, err
	}
	return *column, nil
}

func (m *BoardModule) handleListColumns(_ context.Context, req ListColumnsRequest, _ *mono.Msg) (ListColumnsResponse, error) {
	columns, err := m.repo.ListColumns(req.BoardID)
	if err != nil {
		return ListColumnsResponse{}, err
	}
	return ListColumnsResponse{Columns: columns, Count: len(columns)}, nil
}

func (m *BoardModule) handleGetColumn(_ context.Context, req GetColumnRequest, _ *mono.Msg) (domain.Column, error) {
	column, err := m.repo.FindColumnByID(req.ColumnID)
	if err != nil {
		return domain.Column{}, err
	}
	return *column, nil
}

func (m *BoardModule) handleUpdateColumn(_ context.Context, req UpdateColumnRequest, _ *mono.Msg) (domain.Column, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	column, err := m.repo.UpdateColumn(req.ColumnID, fields)
	if err != nil {
		return domain.Column{}, err
	}
	return *column, nil
}

func (m *BoardModule) handleMoveColumn(_ context.Context, req MoveColumnRequest, _ *mono.Msg) (domain.Column, error) {
	column, err := m.repo.MoveColumn(req.ColumnID, req.Position)
	if err != nil {
		return domain.Column{}, err
	}
	return *column, nil
}

func (m *BoardModule) handleDeleteColumn(_ context.Context, req DeleteColumnRequest, _ *mono.Msg) (DeleteColumnResponse, error) {
	if err := m.repo.DeleteColumn(req.ColumnID); err != nil {
		return DeleteColumnResponse{Deleted: false, ColumnID: req.ColumnID}, err
	}
	return DeleteColumnResponse{Deleted: true, ColumnID: req.ColumnID}, nil
}
