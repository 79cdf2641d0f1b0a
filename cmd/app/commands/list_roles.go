package commands

import (
	"fmt"
	"strings"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	authService "github.com/allisson/modelgate/internal/auth/service"
)

type roleOutput struct {
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
	Default      bool     `json:"default"`
}

// RunListRoles prints the role to capability table in either text or JSON format.
func RunListRoles(roleService authService.RoleService, format string, io IOTuple) error {
	table := roleService.Table()

	rows := make([]roleOutput, 0, len(authDomain.Roles))
	for _, role := range authDomain.Roles {
		caps, ok := table[role]
		if !ok {
			continue
		}
		names := make([]string, 0, len(caps))
		for _, c := range caps {
			names = append(names, string(c))
		}
		rows = append(rows, roleOutput{
			Role:         string(role),
			Capabilities: names,
			Default:      role == authDomain.DefaultRole,
		})
	}

	if format == "json" {
		return writeJSON(rows, io.Writer)
	}

	for _, row := range rows {
		suffix := ""
		if row.Default {
			suffix = " (default)"
		}
		_, _ = fmt.Fprintf(io.Writer, "%-8s %s%s\n", row.Role, strings.Join(row.Capabilities, ","), suffix)
	}
	return nil
}
