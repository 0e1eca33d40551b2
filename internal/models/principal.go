package models

// Role is the closed set of authorization roles. Policy decisions switch on
// this type rather than comparing free-form authority strings.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal is the authenticated caller, resolved once at the HTTP boundary
// and passed explicitly into every engine call. The engine never reads
// ambient request state.
type Principal struct {
	UserID uint
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
