package model

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the server; it is excluded from
// JSON output and only compared against during login.
//
// Role is one of "user", "admin" or "superadmin". Authorization compares
// against the literal "admin" only.
type User struct {
	ID           uint64 `json:"id"`        // users.id
	UserName     string `json:"user_name"` // users.user_name
	Email        string `json:"email"`     // users.email (unique)
	PasswordHash string `json:"-"`         // users.password (bcrypt)
	Role         string `json:"role"`      // users.role
}
