package notification

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/kanban-backend/domain/user"
)

// TypeBoardInvitation marks a notification that is the sole representation
// of a pending board membership. Accepting it creates the BoardMember row
// and removes the notification.
const TypeBoardInvitation = "board_invitation"

// Payload keys used by board invitations.
const (
	PayloadBoardID   = "board_id"
	PayloadBoardName = "board_name"
	PayloadInviterID = "inviter_id"
)

// Payload is a free-form JSON object persisted in a single column.
type Payload map[string]any

// Value serializes the payload for storage.
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan deserializes the payload from storage.
func (p *Payload) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payload source type %T", src)
	}
	return json.Unmarshal(raw, p)
}

// Notification is a mailbox entry targeted at one user.
type Notification struct {
	ID              string    `gorm:"primarykey;size:36" json:"id"`
	UserID          string    `gorm:"size:36;not null;index" json:"user_id"`
	User            user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type            string    `gorm:"size:50;not null" json:"type"`
	Message         string    `gorm:"size:1000;not null" json:"message"`
	IsRead          bool      `gorm:"not null;default:false" json:"is_read"`
	RelatedItemID   string    `gorm:"size:36" json:"related_item_id,omitempty"`
	RelatedItemType string    `gorm:"size:50" json:"related_item_type,omitempty"`
	Payload         Payload   `gorm:"type:text" json:"payload,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}
