package member

import (
	domain "github.com/example/kanban-backend/domain/member"
	domainnotification "github.com/example/kanban-backend/domain/notification"
)

// AddMemberRequest is the request for the add-member service.
type AddMemberRequest struct {
	BoardID   string `json:"board_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
	InviterID string `json:"inviter_id,omitempty"`
}

// AddMemberResponse is the tagged result of add-member: exactly one of
// Member or Notification is set. Invited reports which path was taken.
type AddMemberResponse struct {
	Invited      bool                             `json:"invited"`
	Member       *domain.BoardMember              `json:"member,omitempty"`
	Notification *domainnotification.Notification `json:"notification,omitempty"`
}

// RequestMembershipRequest is the request for the request-membership
// service. The candidate is addressed by email.
type RequestMembershipRequest struct {
	Email     string `json:"email"`
	BoardID   string `json:"board_id"`
	InviterID string `json:"inviter_id"`
}

// RequestMembershipResponse is the response for the request-membership
// service.
type RequestMembershipResponse struct {
	Notification *domainnotification.Notification `json:"notification"`
}

// AcceptInvitationRequest is the request for the accept-invitation service.
type AcceptInvitationRequest struct {
	NotificationID string `json:"notification_id"`
}

// ListMembersRequest is the request for the list-members service.
type ListMembersRequest struct {
	BoardID string `json:"board_id"`
}

// ListMembersResponse is the response for the list-members service.
type ListMembersResponse struct {
	Members []domain.BoardMember `json:"members"`
	Count   int                  `json:"count"`
}

// GetMemberRequest is the request for the get-member service.
type GetMemberRequest struct {
	MemberID string `json:"member_id"`
}

// UpdateMemberRequest is the request for the update-member service.
type UpdateMemberRequest struct {
	MemberID string `json:"member_id"`
	Role     string `json:"role"`
}

// RemoveMemberRequest is the request for the remove-member service.
type RemoveMemberRequest struct {
	MemberID string `json:"member_id"`
}

// RemoveMemberResponse is the response for the remove-member service.
type RemoveMemberResponse struct {
	Removed  bool   `json:"removed"`
	MemberID string `json:"member_id"`
}
