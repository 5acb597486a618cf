package model

// Role identifies a user's authorization level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEditor   Role = "editor"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
	RoleViewer   Role = "viewer"
)

// roleRanks orders roles for coarse-grained authorization checks.
// Unknown roles rank below viewer.
var roleRanks = map[Role]int{
	RoleAdmin:    5,
	RoleManager:  4,
	RoleEditor:   3,
	RoleStaff:    2,
	RoleCustomer: 1,
	RoleViewer:   0,
}

// Rank returns the role's position in the hierarchy, or -1 for roles
// that are not part of it.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Satisfies reports whether a principal holding this role meets the
// required role, using the rank ordering.
func (r Role) Satisfies(required Role) bool {
	return r.Rank() >= required.Rank() && r.Valid()
}

// IsAdmin reports whether the role is exactly admin. Admin surfaces
// check strict equality rather than rank; admin is the ceiling of the
// hierarchy, so a hypothetical role ranked above it would not pass.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
