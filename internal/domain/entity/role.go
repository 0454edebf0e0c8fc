// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents what a signed-in person may see in the client.
type Role string

const (
	// RoleGuest is the role of an anonymous visitor.
	RoleGuest Role = "guest"
	// RoleCustomer indicates a customer who books bikes.
	RoleCustomer Role = "customer"
	// RoleAdmin indicates a franchise operator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// GroupMapping names the provider groups that grant each role.
type GroupMapping struct {
	AdminGroup    string
	CustomerGroup string
}

// RoleFromGroups derives the role of an authenticated principal.
// The admin group takes precedence when both groups are present. A principal
// in neither group is treated as a customer; matched reports whether one of
// the configured groups was found.
func RoleFromGroups(groups []string, mapping GroupMapping) (role Role, matched bool) {
	switch {
	case slices.Contains(groups, mapping.AdminGroup):
		return RoleAdmin, true
	case slices.Contains(groups, mapping.CustomerGroup):
		return RoleCustomer, true
	default:
		return RoleCustomer, false
	}
}

// AccountType is chosen at sign-up and decides which group the backend assigns.
type AccountType string

const (
	AccountTypeCustomer  AccountType = "Customer"
	AccountTypeFranchise AccountType = "Franchise"
)

// IsValid checks if the AccountType is a valid value.
func (t AccountType) IsValid() bool {
	return t == AccountTypeCustomer || t == AccountTypeFranchise
}

// Role returns the role the account type will be granted after confirmation.
func (t AccountType) Role() Role {
	if t == AccountTypeFranchise {
		return RoleAdmin
	}

	return RoleCustomer
}
