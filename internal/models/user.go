package models

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User is the identity snapshot supplied by the auth boundary. The stores
// never resolve users themselves; handlers pass this snapshot in.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
