package models

import "time"

// GroupInvite is a pending invitation: the group's invitee set. Accepting an
// invite converts the row into a GroupMember.
type GroupInvite struct {
	GroupID     uint64    `gorm:"primarykey" json:"group_id"`
	UserID      uint64    `gorm:"primarykey" json:"user_id"`
	InvitedByID uint64    `gorm:"not null" json:"invited_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
