package board

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/kanban-backend/domain/board"
	domainmember "github.com/example/kanban-backend/domain/member"
	"github.com/example/kanban-backend/domain/ordering"
	domaintask "github.com/example/kanban-backend/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrBoardNotFound is returned when a board is not found.
	ErrBoardNotFound = errors.New("board not found")
	// ErrColumnNotFound is returned when a column is not found.
	ErrColumnNotFound = errors.New("column not found")
)

// BoardRepository persists boards and their columns.
type BoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository.
func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a board together with its owner membership and the default
// columns as one transaction. A board is never observable without them.
func (r *BoardRepository) Create(ownerID, name, description string) (*domain.Board, error) {
	now := time.Now()
	board := &domain.Board{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}

		owner := &domainmember.BoardMember{
			ID:      uuid.New().String(),
			BoardID: board.ID,
			UserID:  ownerID,
			Role:    domainmember.RoleOwner,
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		for i, title := range domain.DefaultColumnTitles {
			column := &domain.Column{
				ID:        uuid.New().String(),
				Title:     title,
				BoardID:   board.ID,
				Position:  i,
				CreatedAt: now,
			}
			if err := tx.Create(column).Error; err != nil {
				return fmt.Errorf("failed to create default column: %w", err)
			}
			board.Columns = append(board.Columns, *column)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// FindByID retrieves a board with its columns and their tasks, both ordered
// by position.
func (r *BoardRepository) FindByID(id string) (*domain.Board, error) {
	var board domain.Board
	err := r.db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&board, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return &board, nil
}

// ListForUser returns boards the user owns or is a member of. The union query
// yields each board once even when the user holds both an ownership and a
// membership row.
func (r *BoardRepository) ListForUser(userID string) ([]domain.Board, error) {
	boards := []domain.Board{}
	err := r.db.
		Where("user_id = ? OR id IN (?)",
			userID,
			r.db.Model(&domainmember.BoardMember{}).Select("board_id").Where("user_id = ?", userID),
		).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Update applies the supplied fields to a board.
func (r *BoardRepository) Update(id string, fields map[string]any) (*domain.Board, error) {
	var board domain.Board
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&board, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return fmt.Errorf("failed to find board: %w", err)
		}
		fields["updated_at"] = time.Now()
		if err := tx.Model(&board).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update board: %w", err)
		}
		return tx.First(&board, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Delete removes a board, its columns, their tasks, and its memberships.
func (r *BoardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var board domain.Board
		if err := tx.First(&board, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return fmt.Errorf("failed to find board: %w", err)
		}

		columnIDs := tx.Model(&domain.Column{}).Select("id").Where("board_id = ?", id)
		if err := tx.Where("column_id IN (?)", columnIDs).Delete(&domaintask.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&domain.Column{}).Error; err != nil {
			return fmt.Errorf("failed to delete columns: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&domainmember.BoardMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}
		if err := tx.Delete(&board).Error; err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		return nil
	})
}

// CreateColumn inserts a column at the requested position, shifting later
// siblings. ordering.Append places it after the last column.
func (r *BoardRepository) CreateColumn(boardID, title string, position int) (*domain.Column, error) {
	column := &domain.Column{
		ID:        uuid.New().String(),
		Title:     title,
		BoardID:   boardID,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var board domain.Board
		if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return fmt.Errorf("failed to find board: %w", err)
		}

		var siblings []domain.Column
		if err := tx.Where("board_id = ?", boardID).Order("position ASC").Find(&siblings).Error; err != nil {
			return fmt.Errorf("failed to load columns: %w", err)
		}

		slot := ordering.ClampInsert(position, len(siblings))
		if err := reindexColumns(tx, siblings, slot); err != nil {
			return err
		}

		column.Position = slot
		if err := tx.Create(column).Error; err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// ListColumns returns a board's columns ordered by position, tasks nested and
// ordered by position.
func (r *BoardRepository) ListColumns(boardID string) ([]domain.Column, error) {
	columns := []domain.Column{}
	err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// FindColumnByID retrieves a column with its tasks ordered by position.
func (r *BoardRepository) FindColumnByID(id string) (*domain.Column, error) {
	var column domain.Column
	err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&column, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}
	return &column, nil
}

// UpdateColumn applies the supplied fields to a column. Position changes go
// through MoveColumn.
func (r *BoardRepository) UpdateColumn(id string, fields map[string]any) (*domain.Column, error) {
	var column domain.Column
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return fmt.Errorf("failed to find column: %w", err)
		}
		if err := tx.Model(&column).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update column: %w", err)
		}
		return tx.First(&column, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// MoveColumn resequences a board's columns so the subject lands at the
// requested position. The whole read-modify-write runs in one transaction.
func (r *BoardRepository) MoveColumn(id string, position int) (*domain.Column, error) {
	var column domain.Column
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return fmt.Errorf("failed to find column: %w", err)
		}

		var siblings []domain.Column
		if err := tx.Where("board_id = ? AND id <> ?", column.BoardID, id).
			Order("position ASC").Find(&siblings).Error; err != nil {
			return fmt.Errorf("failed to load columns: %w", err)
		}

		slot := ordering.ClampMove(position, len(siblings))
		if err := reindexColumns(tx, siblings, slot); err != nil {
			return err
		}

		column.Position = slot
		if err := tx.Model(&column).Update("position", slot).Error; err != nil {
			return fmt.Errorf("failed to move column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// DeleteColumn removes a column and its tasks, then closes the position gap
// among the remaining columns.
func (r *BoardRepository) DeleteColumn(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var column domain.Column
		if err := tx.First(&column, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrColumnNotFound
			}
			return fmt.Errorf("failed to find column: %w", err)
		}

		if err := tx.Where("column_id = ?", id).Delete(&domaintask.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Delete(&column).Error; err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}

		var siblings []domain.Column
		if err := tx.Where("board_id = ?", column.BoardID).
			Order("position ASC").Find(&siblings).Error; err != nil {
			return fmt.Errorf("failed to load columns: %w", err)
		}
		return reindexColumns(tx, siblings, len(siblings))
	})
}

// reindexColumns rewrites every sibling's position densely, leaving the given
// slot free. Passing slot == len(siblings) closes gaps without reserving one.
func reindexColumns(tx *gorm.DB, siblings []domain.Column, slot int) error {
	positions := ordering.Slots(len(siblings), slot)
	for i := range siblings {
		if siblings[i].Position == positions[i] {
			continue
		}
		if err := tx.Model(&domain.Column{}).
			Where("id = ?", siblings[i].ID).
			Update("position", positions[i]).Error; err != nil {
			return fmt.Errorf("failed to reindex column: %w", err)
		}
	}
	return nil
}
