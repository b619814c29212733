package models

// Role identifies the access level of an authenticated user. The backend
// issues exactly three roles; anything else is treated as unknown and
// never grants elevated access.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleStudent   Role = "student"
)

// Known reports whether r is one of the roles the backend issues.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleStudent:
		return true
	}
	return false
}

// User is the current-user record returned by the backend. The session
// store mirrors it into local storage while a session is active.
type User struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}
