package board

import (
	"time"

	"github.com/example/kanban-backend/domain/task"
	"github.com/example/kanban-backend/domain/user"
)

// Board is a project workspace owned by one user. Columns and memberships
// hang off it with cascade deletes.
type Board struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Columns     []Column  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
}

// TableName returns the table name for the Board model.
func (Board) TableName() string {
	return "boards"
}

// Column is an ordered bucket of tasks within a board. Positions of a
// board's columns form a dense 0..N-1 sequence.
type Column struct {
	ID        string      `gorm:"primarykey;size:36" json:"id"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	BoardID   string      `gorm:"size:36;not null;index" json:"board_id"`
	Position  int         `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time   `json:"created_at"`
	Tasks     []task.Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"tasks"`
}

// TableName returns the table name for the Column model.
func (Column) TableName() string {
	return "columns"
}

// DefaultColumnTitles are created with every new board, at positions 0..2.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}
