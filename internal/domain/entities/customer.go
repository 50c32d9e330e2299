package entities

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Customer is an existing storefront profile. Orders are linked to it by an
// exact match on the lowercased email at checkout time only.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the authenticated caller of an admin route.
type User struct {
	ID    string
	Email string
	Role  Role
}

// HasAnyRole reports whether the user holds one of roles.
func (u User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
