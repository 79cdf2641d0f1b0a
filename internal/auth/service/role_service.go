package service

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	apperrors "github.com/allisson/modelgate/internal/errors"
)

//go:embed model.conf
var roleModelContent string

//go:embed roles.csv
var rolePolicyContent string

// roleService implements RoleService on a casbin enforcer loaded once at startup.
type roleService struct {
	table map[authDomain.Role][]authDomain.Capability
}

// CapabilitiesOf returns the capabilities granted to role.
func (s *roleService) CapabilitiesOf(role authDomain.Role) ([]authDomain.Capability, error) {
	caps, ok := s.table[role]
	if !ok {
		return nil, apperrors.Wrap(authDomain.ErrUnknownRole, string(role))
	}
	return append([]authDomain.Capability(nil), caps...), nil
}

// Table returns a copy of the role to capability table.
func (s *roleService) Table() map[authDomain.Role][]authDomain.Capability {
	out := make(map[authDomain.Role][]authDomain.Capability, len(s.table))
	for role, caps := range s.table {
		out[role] = append([]authDomain.Capability(nil), caps...)
	}
	return out
}

// NewRoleService evaluates the embedded casbin policy into the role table.
func NewRoleService() (RoleService, error) {
	return newRoleService(rolePolicyContent)
}

func newRoleService(policy string) (*roleService, error) {
	m, err := model.NewModelFromString(roleModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse role model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(policy))
	if err != nil {
		return nil, fmt.Errorf("create role enforcer: %w", err)
	}

	table := make(map[authDomain.Role][]authDomain.Capability, len(authDomain.Roles))
	for _, role := range authDomain.Roles {
		caps := []authDomain.Capability{}
		for _, capability := range authDomain.Capabilities {
			allowed, err := enforcer.Enforce(string(role), string(capability))
			if err != nil {
				return nil, fmt.Errorf("evaluate role %s: %w", role, err)
			}
			if allowed {
				caps = append(caps, capability)
			}
		}
		if len(caps) == 0 {
			return nil, fmt.Errorf("role %s has no capabilities", role)
		}
		table[role] = caps
	}

	return &roleService{table: table}, nil
}
