package domain

// Session is the tagged auth state for a request: either Anonymous or
// Authenticated with a user id. It replaces loosely-typed "maybe a user"
// values; callers must go through UserID's ok result.
type Session struct {
	authenticated bool
	userID        string
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session bound to the given user id. An empty id
// degrades to Anonymous.
func Authenticated(userID string) Session {
	if userID == "" {
		return Session{}
	}
	return Session{authenticated: true, userID: userID}
}

// IsAuthenticated reports whether the session carries a verified identity.
func (s Session) IsAuthenticated() bool {
	return s.authenticated
}

// UserID returns the bound user id and whether one is present.
func (s Session) UserID() (string, bool) {
	return s.userID, s.authenticated
}
