package member

import (
	"errors"
	"fmt"

	domainboard "github.com/example/kanban-backend/domain/board"
	domain "github.com/example/kanban-backend/domain/member"
	domainnotification "github.com/example/kanban-backend/domain/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrMemberNotFound is returned when a membership row is not found.
	ErrMemberNotFound = errors.New("board member not found")
	// ErrBoardNotFound is returned when the target board does not exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrAlreadyMember is returned when the (board, user) pair already has a
	// membership row.
	ErrAlreadyMember = errors.New("user is already a member of this board")
	// ErrInvitePending is returned when an invitation for the pair is already
	// outstanding.
	ErrInvitePending = errors.New("an invitation for this user is already pending")
	// ErrNotificationNotFound is returned when the invitation to accept is
	// absent.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrNotInvitation is returned when accepting a notification that is not
	// a board invitation.
	ErrNotInvitation = errors.New("notification is not a board invitation")
	// ErrInvalidRole is returned for an unknown membership role.
	ErrInvalidRole = errors.New("invalid member role")
)

// MemberRepository persists board memberships and drives the invitation
// state machine: NonMember -> PendingInvite -> Member, or NonMember ->
// Member directly on the owner path.
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// DirectAdd inserts a membership row immediately. The unique index on
// (board_id, user_id) is the authority for duplicates; a concurrent add for
// the same pair surfaces as ErrAlreadyMember from the insert, not from a
// prior existence check.
func (r *MemberRepository) DirectAdd(boardID, userID string, role domain.Role) (*domain.BoardMember, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	member := &domain.BoardMember{
		ID:      uuid.New().String(),
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := findBoard(tx, boardID, nil); err != nil {
			return err
		}
		if err := tx.Create(member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("failed to create membership: %w", err)
		}
		return tx.Preload("User").First(member, "id = ?", member.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Invite writes a board_invitation notification for the candidate. The
// membership check, the pending-invite check, and the insert run inside one
// write transaction, which on this store's single-writer model closes the
// check-then-insert window between concurrent duplicate invitations.
func (r *MemberRepository) Invite(boardID, userID, inviterID string) (*domainnotification.Notification, error) {
	var note *domainnotification.Notification

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var board domainboard.Board
		if err := findBoard(tx, boardID, &board); err != nil {
			return err
		}

		var memberCount int64
		if err := tx.Model(&domain.BoardMember{}).
			Where("board_id = ? AND user_id = ?", boardID, userID).
			Count(&memberCount).Error; err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if memberCount > 0 {
			return ErrAlreadyMember
		}

		var pendingCount int64
		if err := tx.Model(&domainnotification.Notification{}).
			Where("user_id = ? AND type = ? AND related_item_id = ?",
				userID, domainnotification.TypeBoardInvitation, boardID).
			Count(&pendingCount).Error; err != nil {
			return fmt.Errorf("failed to check pending invitations: %w", err)
		}
		if pendingCount > 0 {
			return ErrInvitePending
		}

		payload := domainnotification.Payload{
			domainnotification.PayloadBoardID:   boardID,
			domainnotification.PayloadBoardName: board.Name,
		}
		if inviterID != "" {
			payload[domainnotification.PayloadInviterID] = inviterID
		}
		note = &domainnotification.Notification{
			ID:              uuid.New().String(),
			UserID:          userID,
			Type:            domainnotification.TypeBoardInvitation,
			Message:         fmt.Sprintf("You have been invited to the board %q", board.Name),
			RelatedItemID:   boardID,
			RelatedItemType: "board",
			Payload:         payload,
		}
		if err := tx.Create(note).Error; err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// AcceptInvitation converts a pending invitation into a membership: the
// MEMBER row is created and the notification deleted in one transaction.
// This is the only transition from PendingInvite to Member.
func (r *MemberRepository) AcceptInvitation(notificationID string) (*domain.BoardMember, error) {
	var member *domain.BoardMember

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var note domainnotification.Notification
		if err := tx.First(&note, "id = ?", notificationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotificationNotFound
			}
			return fmt.Errorf("failed to find notification: %w", err)
		}
		if note.Type != domainnotification.TypeBoardInvitation {
			return ErrNotInvitation
		}

		boardID := note.RelatedItemID
		if boardID == "" {
			if v, ok := note.Payload[domainnotification.PayloadBoardID].(string); ok {
				boardID = v
			}
		}
		if boardID == "" {
			return ErrNotInvitation
		}

		member = &domain.BoardMember{
			ID:      uuid.New().String(),
			BoardID: boardID,
			UserID:  note.UserID,
			Role:    domain.RoleMember,
		}
		if err := tx.Create(member).Error; err != nil {
			// A direct add racing the acceptance loses to the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("failed to create membership: %w", err)
		}

		if err := tx.Delete(&note).Error; err != nil {
			return fmt.Errorf("failed to delete invitation: %w", err)
		}
		return tx.Preload("User").First(member, "id = ?", member.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// List returns a board's memberships with their users embedded.
func (r *MemberRepository) List(boardID string) ([]domain.BoardMember, error) {
	members := []domain.BoardMember{}
	err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("added_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// FindByID retrieves a membership row with its user embedded.
func (r *MemberRepository) FindByID(id string) (*domain.BoardMember, error) {
	var member domain.BoardMember
	if err := r.db.Preload("User").First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return &member, nil
}

// UpdateRole changes a member's role. Demoting the sole owner is not
// prevented.
func (r *MemberRepository) UpdateRole(id string, role domain.Role) (*domain.BoardMember, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var member domain.BoardMember
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("failed to find member: %w", err)
		}
		if err := tx.Model(&member).Update("role", role).Error; err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		return tx.Preload("User").First(&member, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership row.
func (r *MemberRepository) Remove(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.BoardMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func findBoard(tx *gorm.DB, boardID string, out *domainboard.Board) error {
	var board domainboard.Board
	if out == nil {
		out = &board
	}
	if err := tx.First(out, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}
	return nil
}
