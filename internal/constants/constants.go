package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID      = "user_id"
	ContextKeyGroup       = "group"
	ContextKeyGroupMember = "group_member"
)

const (
	// SessionName is the cookie name for the authentication session.
	SessionName = "groupboard_session"

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// MinColumnNo is the lowest valid board column. Columns are free-form
	// positive integers with no upper bound; the column layout is a
	// client-side convention, not group metadata.
	MinColumnNo = 1
)
