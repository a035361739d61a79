package repository

import (
	"errors"
	"fmt"

	"github.com/tsukihara/groupboard-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateGroup is returned when creating the group fails inside the creation transaction.
	ErrCreateGroup = errors.New("group repository: create group failed")
	// ErrCreateGroupMember is returned when creating the admin membership fails inside the creation transaction.
	ErrCreateGroupMember = errors.New("group repository: create group member failed")
)

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithAdmin creates a group and its admin membership atomically.
func (r *GormGroupRepository) CreateWithAdmin(group *models.Group, admin *models.GroupMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroup, err)
		}

		admin.GroupID = group.ID
		admin.Role = models.RoleAdmin

		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroupMember, err)
		}

		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByInviteCode finds a group by invite code
func (r *GormGroupRepository) FindByInviteCode(code string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("invite_code = ?", code).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// AddMember adds a member to a group
func (r *GormGroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a group
func (r *GormGroupRepository) RemoveMember(groupID, userID uint64) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

// FindMember finds a specific group member
func (r *GormGroupRepository) FindMember(groupID, userID uint64) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all groups a user is a member of
func (r *GormGroupRepository) ListMembershipsByUserID(userID uint64) ([]models.GroupMember, error) {
	var memberships []models.GroupMember
	if err := r.db.Preload("Group").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a group
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.GroupMember, error) {
	var members []models.GroupMember
	if err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateInvite adds a user to a group's invitee set
func (r *GormGroupRepository) CreateInvite(invite *models.GroupInvite) error {
	return r.db.Create(invite).Error
}

// FindInvite finds a pending invite
func (r *GormGroupRepository) FindInvite(groupID, userID uint64) (*models.GroupInvite, error) {
	var invite models.GroupInvite
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite removes the invite and adds the membership atomically.
func (r *GormGroupRepository) AcceptInvite(invite *models.GroupInvite, member *models.GroupMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND user_id = ?", invite.GroupID, invite.UserID).
			Delete(&models.GroupInvite{}).Error; err != nil {
			return err
		}

		return tx.Create(member).Error
	})
}
