package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// BoardCreatedEvent is emitted after a board, its default columns, and its
// owner membership commit as one unit.
type BoardCreatedEvent struct {
	BoardID   string    `json:"board_id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardCreatedV1 is the typed event definition for board creation.
// Subject: events.board.v1.board-created
var BoardCreatedV1 = helper.EventDefinition[BoardCreatedEvent](
	"board", "BoardCreated", "v1",
)

// MemberInvitedEvent is emitted when an invitation notification is written
// for a candidate member.
type MemberInvitedEvent struct {
	BoardID        string    `json:"board_id"`
	UserID         string    `json:"user_id"`
	NotificationID string    `json:"notification_id"`
	InvitedAt      time.Time `json:"invited_at"`
}

// MemberInvitedV1 is the typed event definition for invitations.
// Subject: events.member.v1.member-invited
var MemberInvitedV1 = helper.EventDefinition[MemberInvitedEvent](
	"member", "MemberInvited", "v1",
)

// MemberJoinedEvent is emitted when an invitation is accepted and the
// membership row exists.
type MemberJoinedEvent struct {
	BoardID  string    `json:"board_id"`
	UserID   string    `json:"user_id"`
	MemberID string    `json:"member_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// MemberJoinedV1 is the typed event definition for accepted invitations.
// Subject: events.member.v1.member-joined
var MemberJoinedV1 = helper.EventDefinition[MemberJoinedEvent](
	"member", "MemberJoined", "v1",
)

// TaskMovedEvent is emitted after a task changes position or column.
type TaskMovedEvent struct {
	TaskID       string    `json:"task_id"`
	FromColumnID string    `json:"from_column_id"`
	ToColumnID   string    `json:"to_column_id"`
	Position     int       `json:"position"`
	MovedAt      time.Time `json:"moved_at"`
}

// TaskMovedV1 is the typed event definition for task moves.
// Subject: events.task.v1.task-moved
var TaskMovedV1 = helper.EventDefinition[TaskMovedEvent](
	"task", "TaskMoved", "v1",
)
