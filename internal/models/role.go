package models

import "fmt"

// Role is the coarse authorization tag carried by every user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// HomePath is where a freshly logged in user of this role lands.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleClient:
		return "/dashboard"
	}
	return "/"
}

// ParseRole converts a stored value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
