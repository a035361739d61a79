package repository

import (
	"github.com/tsukihara/groupboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// GroupRepository defines the interface for group, membership and invite data access
type GroupRepository interface {
	// CreateWithAdmin creates a group and its admin membership within a single transaction.
	CreateWithAdmin(group *models.Group, admin *models.GroupMember) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// FindByInviteCode finds a group by invite code
	FindByInviteCode(code string) (*models.Group, error)

	// AddMember adds a member to a group
	AddMember(member *models.GroupMember) error

	// RemoveMember removes a member from a group
	RemoveMember(groupID, userID uint64) error

	// FindMember finds a specific group member
	FindMember(groupID, userID uint64) (*models.GroupMember, error)

	// ListMembershipsByUserID lists all groups a user is a member of
	ListMembershipsByUserID(userID uint64) ([]models.GroupMember, error)

	// ListMembers lists all members of a group
	ListMembers(groupID uint64) ([]models.GroupMember, error)

	// CreateInvite adds a user to a group's invitee set
	CreateInvite(invite *models.GroupInvite) error

	// FindInvite finds a pending invite
	FindInvite(groupID, userID uint64) (*models.GroupInvite, error)

	// AcceptInvite removes the invite and adds the membership within a single transaction.
	AcceptInvite(invite *models.GroupInvite, member *models.GroupMember) error
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(message *models.Message) error

	// FindInGroup finds a message by ID scoped to a group, with optional preloading
	FindInGroup(groupID, id uint64, preload ...string) (*models.Message, error)

	// ListByGroup lists a group's messages ascending by sent_at
	ListByGroup(groupID uint64) ([]models.Message, error)

	// Update updates a message
	Update(message *models.Message) error

	// Delete soft deletes a message
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindInGroup finds a task by ID scoped to a group, with optional preloading
	FindInGroup(groupID, id uint64, preload ...string) (*models.Task, error)

	// ListByGroup lists a group's tasks in creation order
	ListByGroup(groupID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}
