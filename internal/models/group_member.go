package models

import "time"

type GroupRole string

const (
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

// GroupMember records a user's membership in a group. The group admin is the
// membership row carrying RoleAdmin, so the admin is a member by construction.
type GroupMember struct {
	GroupID  uint64    `gorm:"primarykey" json:"group_id"`
	UserID   uint64    `gorm:"primarykey" json:"user_id"`
	Role     GroupRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsAdmin reports whether the member holds the group admin role.
func (m GroupMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}
