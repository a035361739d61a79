package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tsukihara/groupboard-api/internal/constants"
	"github.com/tsukihara/groupboard-api/internal/database"
	apierrors "github.com/tsukihara/groupboard-api/internal/errors"
	"github.com/tsukihara/groupboard-api/internal/models"
	"gorm.io/gorm"
)

// RequireGroupAccess resolves the :groupId route parameter and verifies the
// caller's membership before the handler runs. An unknown group is 404; an
// existing group the caller does not belong to is 403. The verified group and
// membership are stashed in the context so handlers and services never
// re-query membership within the request.
func RequireGroupAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupIDStr := c.Param("groupId")
		groupID, err := strconv.ParseUint(groupIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid group ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var group models.Group
		if err := database.GetDB().First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Group not found")
			} else {
				apierrors.InternalError(c, "Failed to load group")
			}
			c.Abort()
			return
		}

		var member models.GroupMember
		err = database.GetDB().
			Where("group_id = ? AND user_id = ?", groupID, userID).
			First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Forbidden(c, "You are not a member of this group")
			} else {
				apierrors.InternalError(c, "Failed to verify group membership")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyGroup, group)
		c.Set(constants.ContextKeyGroupMember, member)
		c.Next()
	}
}

// RequireGroupAdmin checks that the verified membership carries the admin
// role. Must run after RequireGroupAccess.
func RequireGroupAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, exists := GetGroupMember(c)
		if !exists {
			apierrors.Forbidden(c, "Group access required")
			c.Abort()
			return
		}

		if !member.IsAdmin() {
			apierrors.Forbidden(c, "Only the group admin can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetGroup retrieves the resolved group from context.
func GetGroup(c *gin.Context) (models.Group, bool) {
	groupInterface, exists := c.Get(constants.ContextKeyGroup)
	if !exists {
		return models.Group{}, false
	}

	group, ok := groupInterface.(models.Group)
	return group, ok
}

// GetGroupMember retrieves the verified membership from context.
func GetGroupMember(c *gin.Context) (models.GroupMember, bool) {
	memberInterface, exists := c.Get(constants.ContextKeyGroupMember)
	if !exists {
		return models.GroupMember{}, false
	}

	member, ok := memberInterface.(models.GroupMember)
	return member, ok
}
