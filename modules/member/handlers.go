package member

import (
	"context"
	"log"
	"time"

	domain "github.com/example/kanban-backend/domain/member"
	"github.com/example/kanban-backend/events"
	"github.com/go-monolith/mono"
)

// handleAddMember is the two-path entry point of the state machine: an owner
// role inserts the membership row directly, anything else leaves the pair as
// NonMember and sends an invitation instead.
func (m *MemberModule) handleAddMember(ctx context.Context, req AddMemberRequest, _ *mono.Msg) (AddMemberResponse, error) {
	role := domain.RoleMember
	if req.Role != "" {
		role = domain.Role(req.Role)
		if !role.Valid() {
			return AddMemberResponse{}, ErrInvalidRole
		}
	}

	if role == domain.RoleOwner {
		member, err := m.repo.DirectAdd(req.BoardID, req.UserID, role)
		if err != nil {
			return AddMemberResponse{}, err
		}
		return AddMemberResponse{Invited: false, Member: member}, nil
	}

	if err := m.throttle.Allow(ctx, req.InviterID); err != nil {
		return AddMemberResponse{}, err
	}

	note, err := m.repo.Invite(req.BoardID, req.UserID, req.InviterID)
	if err != nil {
		return AddMemberResponse{}, err
	}
	m.publishInvited(note.RelatedItemID, note.UserID, note.ID)
	return AddMemberResponse{Invited: true, Notification: note}, nil
}

// handleRequestMembership resolves the candidate by email through the auth
// module, then runs the same invitation path as add-member.
func (m *MemberModule) handleRequestMembership(ctx context.Context, req RequestMembershipRequest, _ *mono.Msg) (RequestMembershipResponse, error) {
	candidate, err := m.authPort.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return RequestMembershipResponse{}, err
	}

	if err := m.throttle.Allow(ctx, req.InviterID); err != nil {
		return RequestMembershipResponse{}, err
	}

	note, err := m.repo.Invite(req.BoardID, candidate.ID, req.InviterID)
	if err != nil {
		return RequestMembershipResponse{}, err
	}
	m.publishInvited(note.RelatedItemID, note.UserID, note.ID)
	return RequestMembershipResponse{Notification: note}, nil
}

func (m *MemberModule) handleAcceptInvitation(_ context.Context, req AcceptInvitationRequest, _ *mono.Msg) (domain.BoardMember, error) {
	member, err := m.repo.AcceptInvitation(req.NotificationID)
	if err != nil {
		return domain.BoardMember{}, err
	}

	if m.eventBus != nil {
		event := events.MemberJoinedEvent{
			BoardID:  member.BoardID,
			UserID:   member.UserID,
			MemberID: member.ID,
			JoinedAt: member.AddedAt,
		}
		if err := events.MemberJoinedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[member] Warning: failed to publish MemberJoined event for member %s: %v", member.ID, err)
		}
	}
	return *member, nil
}

func (m *MemberModule) handleListMembers(_ context.Context, req ListMembersRequest, _ *mono.Msg) (ListMembersResponse, error) {
	members, err := m.repo.List(req.BoardID)
	if err != nil {
		return ListMembersResponse{}, err
	}
	return ListMembersResponse{Members: members, Count: len(members)}, nil
}

func (m *MemberModule) handleGetMember(_ context.Context, req GetMemberRequest, _ *mono.Msg) (domain.BoardMember, error) {
	member, err := m.repo.FindByID(req.MemberID)
	if err != nil {
		return domain.BoardMember{}, err
	}
	return *member, nil
}

func (m *MemberModule) handleUpdateMember(_ context.Context, req UpdateMemberRequest, _ *mono.Msg) (domain.BoardMember, error) {
	member, err := m.repo.UpdateRole(req.MemberID, domain.Role(req.Role))
	if err != nil {
		return domain.BoardMember{}, err
	}
	return *member, nil
}

func (m *MemberModule) handleRemoveMember(_ context.Context, req RemoveMemberRequest, _ *mono.Msg) (RemoveMemberResponse, error) {
	if err := m.repo.Remove(req.MemberID); err != nil {
		return RemoveMemberResponse{Removed: false, MemberID: req.MemberID}, err
	}
	return RemoveMemberResponse{Removed: true, MemberID: req.MemberID}, nil
}

func (m *MemberModule) publishInvited(boardID, userID, notificationID string) {
	if m.eventBus == nil {
		return
	}
	event := events.MemberInvitedEvent{
		BoardID:        boardID,
		UserID:         userID,
		NotificationID: notificationID,
		InvitedAt:      time.Now(),
	}
	if err := events.MemberInvitedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[member] Warning: failed to publish MemberInvited event for notification %s: %v", notificationID, err)
	}
}
