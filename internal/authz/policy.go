// Package authz holds the ownership policy for group-scoped resources in one
// declarative table instead of per-handler conditionals. Membership itself is
// established upstream (middleware resolves the caller's GroupMember before a
// handler runs); this package only answers whether a verified member may act
// on a given resource.
package authz

import (
	"github.com/tsukihara/groupboard-api/internal/models"
)

type Resource string

const (
	ResourceMessage Resource = "message"
	ResourceTask    Resource = "task"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Relationship is the relation a caller must hold to the resource.
type Relationship int

const (
	// RelMember permits any member of the resource's group.
	RelMember Relationship = iota
	// RelOwner permits only the resource's owner.
	RelOwner
	// RelOwnerOrAdmin permits the resource's owner or the group admin.
	RelOwnerOrAdmin
)

// Message edit is owner-only while delete is owner-or-admin. The asymmetry is
// deliberate: an admin may moderate the channel but never put words in a
// member's mouth.
var policy = map[Resource]map[Action]Relationship{
	ResourceMessage: {
		ActionRead:   RelMember,
		ActionCreate: RelMember,
		ActionUpdate: RelOwner,
		ActionDelete: RelOwnerOrAdmin,
	},
	ResourceTask: {
		ActionRead:   RelMember,
		ActionCreate: RelMember,
		ActionUpdate: RelMember,
		ActionDelete: RelMember,
	},
}

// Can reports whether member may perform action on a resource owned by
// ownerID. Unknown resource/action pairs are denied.
func Can(member models.GroupMember, ownerID uint64, resource Resource, action Action) bool {
	rel, ok := policy[resource][action]
	if !ok {
		return false
	}

	switch rel {
	case RelMember:
		return true
	case RelOwner:
		return member.UserID == ownerID
	case RelOwnerOrAdmin:
		return member.UserID == ownerID || member.IsAdmin()
	default:
		return false
	}
}
