// Package access decides what a caller may see or change. Services call it
// at their boundary before any data reaches the settlement logic.
package access

import (
	"slices"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// CanAccess reports whether a caller with role and scopeIDs may touch targetID.
// Admins may touch anything; everyone else only ids inside their scope.
func CanAccess(role domain.Role, scopeIDs []string, targetID string) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if targetID == "" {
		return false
	}
	return slices.Contains(scopeIDs, targetID)
}

// CanAccessBranch reports whether the caller may act on the branch.
func CanAccessBranch(caller domain.Caller, branchID string) bool {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleBranchManager:
		return CanAccess(caller.Role, caller.BranchIDs, branchID)
	}
	return false
}

// CanAccessProducer reports whether the caller may read the producer's data.
// Producers only see themselves; branch managers see producers of their branches.
func CanAccessProducer(caller domain.Caller, producer domain.Producer) bool {
	switch caller.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleBranchManager:
		return CanAccessBranch(caller, producer.BranchID)
	case domain.RoleProducer:
		return CanAccess(caller.Role, []string{caller.ProducerID}, producer.ProducerID)
	}
	return false
}

// CanManageLineItems reports whether the caller may record or correct line items.
func CanManageLineItems(caller domain.Caller, producer domain.Producer) bool {
	return caller.Role != domain.RoleProducer && CanAccessProducer(caller, producer)
}

// CanSettle reports whether the caller may record a settlement for the producer.
// Producers can view their settlements but never record them.
func CanSettle(caller domain.Caller, producer domain.Producer) bool {
	return caller.Role != domain.RoleProducer && CanAccessProducer(caller, producer)
}

// CanManageUsers reports whether the caller may create logins.
func CanManageUsers(caller domain.Caller) bool {
	return caller.Role == domain.RoleAdmin
}

// BranchScope returns the branch filter for list queries: nil means unrestricted.
func BranchScope(caller domain.Caller) []string {
	if caller.Role == domain.RoleAdmin {
		return nil
	}
	if caller.BranchIDs == nil {
		return []string{}
	}
	return caller.BranchIDs
}

// RestrictToBranches keeps only the records the caller may see, judged by the
// branch each record belongs to.
func RestrictToBranches[T any](caller domain.Caller, records []T, branchOf func(T) string) []T {
	if caller.Role == domain.RoleAdmin {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if CanAccessBranch(caller, branchOf(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Action is something a caller wants to do with a producer's data.
type Action int

const (
	ActionView Action = iota
	ActionManageLineItems
	ActionSettle
)

func (a Action) String() string {
	switch a {
	case ActionManageLineItems:
		return "manage line items"
	case ActionSettle:
		return "settle"
	}
	return "view"
}

// Allowed reports whether the caller may perform action on the producer.
func Allowed(caller domain.Caller, producer domain.Producer, action Action) bool {
	switch action {
	case ActionManageLineItems:
		return CanManageLineItems(caller, producer)
	case ActionSettle:
		return CanSettle(caller, producer)
	}
	return CanAccessProducer(caller, producer)
}
