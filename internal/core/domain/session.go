package domain

// Division is the organisational unit a role belongs to.
type Division struct {
	Name string `json:"name"`
}

// Role describes what the authenticated user is allowed to do.
type Role struct {
	Name     string   `json:"name"`
	Division Division `json:"division"`
}

// User models the authenticated actor's profile as returned by /login and /user.
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Role        Role   `json:"role"`
}

// Session is the process-wide authenticated state: an opaque bearer token and
// the cached profile. An empty token means logged out.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the session carries a credential.
func (s Session) Valid() bool {
	return s.Token != ""
}
