package dto

import (
	"github.com/tsukihara/groupboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

// ToGroupDTO converts a Group model to GroupDTO
func ToGroupDTO(group models.Group, includeInviteCode bool) GroupDTO {
	dto := GroupDTO{
		ID:   group.ID,
		Name: group.Name,
	}
	if includeInviteCode {
		dto.InviteCode = group.InviteCode
	}
	return dto
}
