package domain

// Action is a tagged authorization action. The same "self or admin" check
// used to be repeated inline across every route; keeping it as one decision
// table stops the copies drifting apart.
type Action int

const (
	// ActionReadOwn reads a resource the actor claims to own.
	ActionReadOwn Action = iota
	// ActionReadAll reads across all owners.
	ActionReadAll
	// ActionWriteOwn mutates a resource the actor claims to own.
	ActionWriteOwn
	// ActionDelete deletes a resource; owners may delete their own,
	// admins may delete anyone's.
	ActionDelete
	// ActionAdmin is reserved for administrative operations with no
	// meaningful resource owner.
	ActionAdmin
)

// Actor is the decoded identity making a request. It always comes from token
// claims, never from client-supplied fields.
type Actor struct {
	ID   string
	Role Role
}

// Allowed is the pure authorization decision function. ownerID is the owner
// of the target resource and may be empty for ActionReadAll/ActionAdmin.
//
// Admins are allowed everything. Everyone else is allowed own-scoped actions
// on resources they own, and nothing more.
func Allowed(actor Actor, action Action, ownerID string) bool {
	if actor.Role == RoleAdmin {
		return true
	}

	switch action {
	case ActionReadOwn, ActionWriteOwn, ActionDelete:
		return actor.ID != "" && actor.ID == ownerID
	default:
		return false
	}
}
