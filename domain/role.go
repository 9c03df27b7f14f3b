package domain

// Role is the hidden faction of a Participant. It is unset until the
// session starts and immutable afterwards.
type Role int

const (
	RoleUnassigned Role = iota
	RoleConspirator
	RoleLoyal
)

func (r Role) String() string {
	switch r {
	case RoleConspirator:
		return "conspirator"
	case RoleLoyal:
		return "loyal"
	default:
		return "unassigned"
	}
}
