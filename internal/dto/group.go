package dto

import (
	"time"

	"github.com/tsukihara/groupboard-api/internal/models"
)

// GroupWithRoleDTO represents a group with the caller's role
type GroupWithRoleDTO struct {
	GroupDTO
	Role models.GroupRole `json:"role"`
}

// GroupMemberDTO represents a member in a group
type GroupMemberDTO struct {
	User     UserDTO          `json:"user"`
	Role     models.GroupRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// GroupDetailDTO represents detailed group information
type GroupDetailDTO struct {
	GroupDTO
	Members  []GroupMemberDTO `json:"members"`
	YourRole models.GroupRole `json:"your_role"`
}

// GroupInviteDTO represents a pending invite
type GroupInviteDTO struct {
	GroupID     uint64    `json:"group_id"`
	UserID      uint64    `json:"user_id"`
	InvitedByID uint64    `json:"invited_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToGroupWithRoleDTO converts a membership to DTO with role
func ToGroupWithRoleDTO(member models.GroupMember) GroupWithRoleDTO {
	return GroupWithRoleDTO{
		GroupDTO: ToGroupDTO(member.Group, false),
		Role:     member.Role,
	}
}

// ToGroupMemberDTO converts a member to DTO
func ToGroupMemberDTO(member models.GroupMember) GroupMemberDTO {
	return GroupMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToGroupDetailDTO converts a group with members to detailed DTO. The invite
// code is exposed only to the admin.
func ToGroupDetailDTO(group models.Group, members []models.GroupMember, caller models.GroupMember) GroupDetailDTO {
	memberDTOs := make([]GroupMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToGroupMemberDTO(member)
	}

	return GroupDetailDTO{
		GroupDTO: ToGroupDTO(group, caller.IsAdmin()),
		Members:  memberDTOs,
		YourRole: caller.Role,
	}
}

// ToGroupInviteDTO converts an invite to DTO
func ToGroupInviteDTO(invite models.GroupInvite) GroupInviteDTO {
	return GroupInviteDTO{
		GroupID:     invite.GroupID,
		UserID:      invite.UserID,
		InvitedByID: invite.InvitedByID,
		CreatedAt:   invite.CreatedAt,
	}
}
