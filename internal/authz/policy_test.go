package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsukihara/groupboard-api/internal/models"
)

func TestCan(t *testing.T) {
	admin := models.GroupMember{GroupID: 1, UserID: 10, Role: models.RoleAdmin}
	sender := models.GroupMember{GroupID: 1, UserID: 20, Role: models.RoleMember}
	other := models.GroupMember{GroupID: 1, UserID: 30, Role: models.RoleMember}

	const ownerID = uint64(20)

	tests := []struct {
		name     string
		member   models.GroupMember
		resource Resource
		action   Action
		want     bool
	}{
		{"any member can read messages", other, ResourceMessage, ActionRead, true},
		{"any member can create messages", other, ResourceMessage, ActionCreate, true},
		{"sender can edit own message", sender, ResourceMessage, ActionUpdate, true},
		{"admin cannot edit another member's message", admin, ResourceMessage, ActionUpdate, false},
		{"other member cannot edit message", other, ResourceMessage, ActionUpdate, false},
		{"sender can delete own message", sender, ResourceMessage, ActionDelete, true},
		{"admin can delete another member's message", admin, ResourceMessage, ActionDelete, true},
		{"other member cannot delete message", other, ResourceMessage, ActionDelete, false},
		{"any member can update tasks", other, ResourceTask, ActionUpdate, true},
		{"any member can delete tasks", other, ResourceTask, ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.member, ownerID, tt.resource, tt.action))
		})
	}
}

func TestCanDeniesUnknownPairs(t *testing.T) {
	member := models.GroupMember{GroupID: 1, UserID: 10, Role: models.RoleAdmin}

	assert.False(t, Can(member, 10, Resource("board"), ActionRead))
	assert.False(t, Can(member, 10, ResourceMessage, Action("archive")))
}
