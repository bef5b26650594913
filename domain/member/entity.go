package member

import (
	"time"

	"github.com/example/kanban-backend/domain/board"
	"github.com/example/kanban-backend/domain/user"
)

// Role is the access level a member has on a board.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// BoardMember grants a user access to a board. The unique index on
// (board_id, user_id) is the storage-level guard against duplicate
// memberships racing past an application-level existence check.
type BoardMember struct {
	ID      string      `gorm:"primarykey;size:36" json:"id"`
	BoardID string      `gorm:"size:36;not null;uniqueIndex:idx_board_user" json:"board_id"`
	Board   board.Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	UserID  string      `gorm:"size:36;not null;uniqueIndex:idx_board_user" json:"user_id"`
	User    user.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Role    Role        `gorm:"size:20;not null;default:member" json:"role"`
	AddedAt time.Time   `gorm:"autoCreateTime" json:"added_at"`
}

// TableName returns the table name for the BoardMember model.
func (BoardMember) TableName() string {
	return "board_members"
}
