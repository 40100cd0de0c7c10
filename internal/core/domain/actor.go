package domain

// Actor is the identity and privilege context of a single request. It is
// built by the auth middleware and passed explicitly into every service and
// policy call; nothing reads the current user from ambient state.
type Actor struct {
	Authenticated bool
	UserID        string
	Username      string
	Role          Role
	IsSuperuser   bool
}

// Anonymous returns the actor for an unauthenticated request.
func Anonymous() Actor {
	return Actor{}
}
