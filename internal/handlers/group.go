package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tsukihara/groupboard-api/internal/dto"
	apierrors "github.com/tsukihara/groupboard-api/internal/errors"
	"github.com/tsukihara/groupboard-api/internal/middleware"
	"github.com/tsukihara/groupboard-api/internal/services"
)

// GroupHandler coordinates group and membership HTTP handlers.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// CreateGroup creates a group with the caller as admin.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGroupRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(req.Name, userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group, true))
}

// ListGroups returns the groups the caller belongs to, with role.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.groupService.ListGroups(userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	groups := make([]dto.GroupWithRoleDTO, len(memberships))
	for i, m := range memberships {
		groups[i] = dto.ToGroupWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
	})
}

// GetGroup returns group details with members. Membership was verified by
// RequireGroupAccess.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, ok := middleware.GetGroup(c)
	if !ok {
		apierrors.InternalError(c, "Group not found in context")
		return
	}
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	members, err := h.groupService.ListMembers(group.ID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTO(group, members, member))
}

// JoinGroup adds the caller to a group by invite code.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.JoinByCode(req.InviteCode, userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined group",
		"group":   dto.ToGroupDTO(*group, false),
	})
}

// InviteUser adds a user to the group's invitee set. Admin only (enforced by
// RequireGroupAdmin on the route).
func (h *GroupHandler) InviteUser(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	type InviteRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.groupService.InviteUser(member, req.Username)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupInviteDTO(*invite))
}

// AcceptInvite converts the caller's pending invite into a membership. The
// caller is not yet a member, so this route must not sit behind
// RequireGroupAccess.
func (h *GroupHandler) AcceptInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	groupID, err := strconv.ParseUint(c.Param("groupId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	member, err := h.groupService.AcceptInvite(groupID, userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Invite accepted",
		"group_id": member.GroupID,
		"role":     member.Role,
	})
}

// RemoveMember removes a member from the group. Admin only.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	targetUserID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.groupService.RemoveMember(member, targetUserID); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGroupNameRequired),
		errors.Is(err, services.ErrCannotRemoveSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotInvited),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyInvited):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrFailedToCreateGroup):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
