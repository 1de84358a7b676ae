package domain

// Role is the platform role of an authenticated caller.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBranchManager Role = "branch_manager"
	RoleProducer      Role = "producer"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBranchManager, RoleProducer:
		return true
	}
	return false
}

// Caller is the identity and scope on whose behalf a service call runs.
// It is always passed explicitly; services never look it up from globals.
type Caller struct {
	UserID     string
	Role       Role
	ProducerID string   // set only for RoleProducer
	BranchIDs  []string // branches a branch manager may act on
}
