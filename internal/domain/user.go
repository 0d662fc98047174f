package domain

// Role represents the access level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity the core needs; authentication itself is external
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Blocked bool   `json:"blocked,omitempty"`
}

// IsAdmin returns true if the user may change venue configuration
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
