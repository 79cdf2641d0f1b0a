// Package domain defines the users, roles and capabilities that authentication and
// authorization operate on.
//
// A role is one of a fixed set of names. Each role grants a fixed set of capabilities,
// and a capability names the verb a request needs (create, read, update or delete),
// independent of the resource the verb is applied to.
package domain

// Capability defines the types of operations that can be performed on resources.
type Capability string

const (
	// CreateCapability allows inserting new records.
	CreateCapability Capability = "create"

	// ReadCapability allows listing and fetching records.
	ReadCapability Capability = "read"

	// UpdateCapability allows modifying existing records.
	UpdateCapability Capability = "update"

	// DeleteCapability allows removing records.
	DeleteCapability Capability = "delete"
)

// Capabilities lists every capability in canonical order.
var Capabilities = []Capability{CreateCapability, ReadCapability, UpdateCapability, DeleteCapability}

// Role is the named set of capabilities a user is granted at signup.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// DefaultRole is assigned when a signup request does not name one.
const DefaultRole = RoleUser

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleEditor, RoleUser}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsValid reports whether c is one of the known capabilities.
func (c Capability) IsValid() bool {
	for _, known := range Capabilities {
		if c == known {
			return true
		}
	}
	return false
}
