package models

// SuperAdminID is the fixed id of the immutable Super Admin account
const SuperAdminID int64 = 0

// AdminUser is an administrator account
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Role         AdminRole `json:"role"`
	IsSuperAdmin bool      `json:"isSuperAdmin"`
}

// Actor identifies the administrator performing an operation.
// The zero Actor is anonymous.
type Actor struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	Known        bool   `json:"-"`
}

// ActorFromAdmin builds the actor for an authenticated admin
func ActorFromAdmin(a AdminUser) Actor {
	return Actor{ID: a.ID, Username: a.Username, IsSuperAdmin: a.IsSuperAdmin, Known: true}
}
