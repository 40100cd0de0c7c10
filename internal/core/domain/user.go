package domain

import "time"

// Role is the privilege tier assigned to a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User models a registered account. OTPHash holds the bcrypt hash of the
// pending one-time secret; empty means no exchange is in flight.
type User struct {
	ID          string    `json:"-"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Role        Role      `json:"role"`
	IsSuperuser bool      `json:"-"`
	OTPHash     string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
