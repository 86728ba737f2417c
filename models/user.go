package models

type User struct {
	ID        int    `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Password  string `db:"password" json:"-"`
	Role      int    `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Role constants
const (
	RoleUser  = 0 // regular user
	RoleAdmin = 1 // administrator
)

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
