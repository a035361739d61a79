package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsukihara/groupboard-api/internal/models"
	"github.com/tsukihara/groupboard-api/internal/repository"
	"github.com/tsukihara/groupboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrGroupNameRequired   = errors.New("group name is required")
	ErrGroupNotFound       = errors.New("group not found")
	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrAlreadyMember       = errors.New("user is already a member of this group")
	ErrAlreadyInvited      = errors.New("user has already been invited to this group")
	ErrNotInvited          = errors.New("user has not been invited to this group")
	ErrMemberNotFound      = errors.New("group member not found")
	ErrCannotRemoveSelf    = errors.New("the admin cannot remove themselves from the group")
	ErrFailedToCreateGroup = errors.New("failed to create group")
)

// GroupService handles group, membership and invite business logic.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a group with the creator as its admin member.
func (s *GroupService) CreateGroup(name string, creatorID uint64) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrFailedToCreateGroup
	}

	group := &models.Group{
		Name:       name,
		InviteCode: inviteCode,
	}

	admin := &models.GroupMember{
		UserID:   creatorID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.CreateWithAdmin(group, admin); err != nil {
		return nil, ErrFailedToCreateGroup
	}

	return group, nil
}

// ListGroups returns the memberships (with groups preloaded) of a user.
func (s *GroupService) ListGroups(userID uint64) ([]models.GroupMember, error) {
	memberships, err := s.groupRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return memberships, nil
}

// ListMembers returns all members of a group with users preloaded.
func (s *GroupService) ListMembers(groupID uint64) ([]models.GroupMember, error) {
	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// InviteUser adds a user to the group's invitee set. The caller must hold the
// admin role, which the route middleware already guarantees.
func (s *GroupService) InviteUser(admin models.GroupMember, username string) (*models.GroupInvite, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.groupRepo.FindMember(admin.GroupID, user.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if _, err := s.groupRepo.FindInvite(admin.GroupID, user.ID); err == nil {
		return nil, ErrAlreadyInvited
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check invite: %w", err)
	}

	invite := &models.GroupInvite{
		GroupID:     admin.GroupID,
		UserID:      user.ID,
		InvitedByID: admin.UserID,
	}

	if err := s.groupRepo.CreateInvite(invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	return invite, nil
}

// AcceptInvite converts a pending invite into a membership.
func (s *GroupService) AcceptInvite(groupID, userID uint64) (*models.GroupMember, error) {
	invite, err := s.groupRepo.FindInvite(groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInvited
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}

	member := &models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.AcceptInvite(invite, member); err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}

	return member, nil
}

// JoinByCode adds the caller to the group matching the invite code.
func (s *GroupService) JoinByCode(code string, userID uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByInviteCode(strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if _, err := s.groupRepo.FindMember(group.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to join group: %w", err)
	}

	return group, nil
}

// RemoveMember removes a member from the group. The caller must hold the
// admin role; the admin cannot remove themselves since the group would be
// left without an admin.
func (s *GroupService) RemoveMember(admin models.GroupMember, targetUserID uint64) error {
	if targetUserID == admin.UserID {
		return ErrCannotRemoveSelf
	}

	if _, err := s.groupRepo.FindMember(admin.GroupID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.groupRepo.RemoveMember(admin.GroupID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
