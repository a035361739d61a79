package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tsukihara/groupboard-api/internal/constants"
	"github.com/tsukihara/groupboard-api/internal/database"
	"github.com/tsukihara/groupboard-api/internal/dto"
	"github.com/tsukihara/groupboard-api/internal/models"
	"github.com/tsukihara/groupboard-api/internal/repository"
	"github.com/tsukihara/groupboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type groupTestEnv struct {
	db           *gorm.DB
	handler      *GroupHandler
	groupService *services.GroupService
}

func setupGroupTestEnv(t *testing.T) groupTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupInvite{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	groupService := services.NewGroupService(groupRepo, userRepo)
	handler := NewGroupHandler(groupService)

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return groupTestEnv{
		db:           db,
		handler:      handler,
		groupService: groupService,
	}
}

func (env groupTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func groupTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func TestGroupHandler_CreateGroup(t *testing.T) {
	env := setupGroupTestEnv(t)
	user := env.createUser(t, "founder")

	body, err := json.Marshal(map[string]string{"name": "Weekend Project"})
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups", body, user.ID)
	env.handler.CreateGroup(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.GroupDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Weekend Project", response.Name)
	require.NotEmpty(t, response.InviteCode)

	// Creator becomes the group admin.
	var member models.GroupMember
	require.NoError(t, env.db.Where("group_id = ? AND user_id = ?", response.ID, user.ID).First(&member).Error)
	require.Equal(t, models.RoleAdmin, member.Role)
}

func TestGroupHandler_CreateGroup_NameRequired(t *testing.T) {
	env := setupGroupTestEnv(t)
	user := env.createUser(t, "founder")

	c, w := groupTestContext(http.MethodPost, "/api/groups", []byte(`{"name":""}`), user.ID)
	env.handler.CreateGroup(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroupHandler_JoinGroup_ByInviteCode(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")
	joiner := env.createUser(t, "joiner")

	group, err := env.groupService.CreateGroup("Open Group", founder.ID)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"invite_code": group.InviteCode})
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups/join", body, joiner.ID)
	env.handler.JoinGroup(c)

	require.Equal(t, http.StatusOK, w.Code)

	var member models.GroupMember
	require.NoError(t, env.db.Where("group_id = ? AND user_id = ?", group.ID, joiner.ID).First(&member).Error)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestGroupHandler_JoinGroup_AlreadyMember(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")

	group, err := env.groupService.CreateGroup("Open Group", founder.ID)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"invite_code": group.InviteCode})
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups/join", body, founder.ID)
	env.handler.JoinGroup(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestGroupHandler_JoinGroup_BadCode(t *testing.T) {
	env := setupGroupTestEnv(t)
	joiner := env.createUser(t, "joiner")

	body, err := json.Marshal(map[string]string{"invite_code": "NOPE-NOPE-NOPE"})
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups/join", body, joiner.ID)
	env.handler.JoinGroup(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupHandler_InviteAndAccept(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")
	invitee := env.createUser(t, "invitee")

	group, err := env.groupService.CreateGroup("Invite Only", founder.ID)
	require.NoError(t, err)

	adminMember, err := env.groupService.ListMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, adminMember, 1)

	body, err := json.Marshal(map[string]string{"username": "invitee"})
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups/1/invites", body, founder.ID)
	c.Set(constants.ContextKeyGroupMember, adminMember[0])
	env.handler.InviteUser(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var invite dto.GroupInviteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invite))
	require.Equal(t, invitee.ID, invite.UserID)
	require.Equal(t, founder.ID, invite.InvitedByID)

	acceptCtx, acceptW := groupTestContext(http.MethodPost, "/api/groups/1/invites/accept", nil, invitee.ID)
	acceptCtx.Params = gin.Params{{Key: "groupId", Value: "1"}}
	env.handler.AcceptInvite(acceptCtx)

	require.Equal(t, http.StatusOK, acceptW.Code)

	var member models.GroupMember
	require.NoError(t, env.db.Where("group_id = ? AND user_id = ?", group.ID, invitee.ID).First(&member).Error)
	require.Equal(t, models.RoleMember, member.Role)

	// Accepting consumes the invite.
	var count int64
	env.db.Model(&models.GroupInvite{}).Where("group_id = ? AND user_id = ?", group.ID, invitee.ID).Count(&count)
	require.Zero(t, count)
}

func TestGroupHandler_AcceptInvite_NotInvited(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")
	stranger := env.createUser(t, "stranger")

	_, err := env.groupService.CreateGroup("Invite Only", founder.ID)
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodPost, "/api/groups/1/invites/accept", nil, stranger.ID)
	c.Params = gin.Params{{Key: "groupId", Value: "1"}}
	env.handler.AcceptInvite(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupHandler_RemoveMember(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")
	member := env.createUser(t, "member")

	group, err := env.groupService.CreateGroup("Team", founder.ID)
	require.NoError(t, err)
	_, err = env.groupService.JoinByCode(group.InviteCode, member.ID)
	require.NoError(t, err)

	adminMembership := models.GroupMember{
		GroupID:  group.ID,
		UserID:   founder.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	c, w := groupTestContext(http.MethodDelete, "/api/groups/1/members/2", nil, founder.ID)
	c.Set(constants.ContextKeyGroupMember, adminMembership)
	c.Params = gin.Params{{Key: "userId", Value: "2"}}
	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.GroupMember{}).Where("group_id = ? AND user_id = ?", group.ID, member.ID).Count(&count)
	require.Zero(t, count)
}

func TestGroupHandler_RemoveMember_CannotRemoveSelf(t *testing.T) {
	env := setupGroupTestEnv(t)
	founder := env.createUser(t, "founder")

	group, err := env.groupService.CreateGroup("Team", founder.ID)
	require.NoError(t, err)

	adminMembership := models.GroupMember{
		GroupID:  group.ID,
		UserID:   founder.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	c, w := groupTestContext(http.MethodDelete, "/api/groups/1/members/1", nil, founder.ID)
	c.Set(constants.ContextKeyGroupMember, adminMembership)
	c.Params = gin.Params{{Key: "userId", Value: "1"}}
	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroupHandler_ListGroups(t *testing.T) {
	env := setupGroupTestEnv(t)
	user := env.createUser(t, "busy")

	_, err := env.groupService.CreateGroup("First", user.ID)
	require.NoError(t, err)
	_, err = env.groupService.CreateGroup("Second", user.ID)
	require.NoError(t, err)

	c, w := groupTestContext(http.MethodGet, "/api/groups", nil, user.ID)
	env.handler.ListGroups(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Groups []dto.GroupWithRoleDTO `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Groups, 2)
	for _, g := range response.Groups {
		require.Equal(t, models.RoleAdmin, g.Role)
	}
}
