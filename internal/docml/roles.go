package docml

import (
	"regexp"
	"strconv"

	"github.com/dgallion1/docml/internal/identity"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// word matches the characters allowed in role references and section names.
const word = `[\p{L}\p{N}_]`

var roleLine = regexp.MustCompile(`^(` + word + `+)` + space + `*:` + space + `*(.+?)` + space + `*\[order` + space + `*:` + space + `*([0-9]+)\]` + space + `*$`)

// RoleRegistry holds declared signer roles in declaration order and resolves
// role references used by content directives.
type RoleRegistry struct {
	roles []portabledoc.SignerRole
	byRef map[string]portabledoc.SignerRole
}

// ParseRoles reads "ref: Label [order: N]" lines. Lines of any other shape
// are skipped.
func ParseRoles(lines []string) *RoleRegistry {
	reg := &RoleRegistry{
		roles: []portabledoc.SignerRole{},
		byRef: map[string]portabledoc.SignerRole{},
	}
	for _, line := range lines {
		line = trimSpace(line)
		if line == "" {
			continue
		}
		m := roleLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		order, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		ref := m[1]
		role := portabledoc.SignerRole{
			ID:    identity.ID(ref),
			Label: trimSpace(m[2]),
			Name:  portabledoc.FieldValue{Type: portabledoc.FieldTypeText},
			Email: portabledoc.FieldValue{Type: portabledoc.FieldTypeText},
			Order: order,
		}
		reg.roles = append(reg.roles, role)
		reg.byRef[ref] = role
	}
	return reg
}

// Roles returns the declared roles in declaration order.
func (r *RoleRegistry) Roles() []portabledoc.SignerRole {
	return r.roles
}

// Lookup returns the role declared under ref. A nil registry declares nothing.
func (r *RoleRegistry) Lookup(ref string) (portabledoc.SignerRole, bool) {
	if r == nil {
		return portabledoc.SignerRole{}, false
	}
	role, ok := r.byRef[ref]
	return role, ok
}

// Resolve returns the id of the role declared under ref. Undeclared
// references still get a stable id derived from the reference itself.
func (r *RoleRegistry) Resolve(ref string) string {
	if role, ok := r.Lookup(ref); ok {
		return role.ID
	}
	return identity.ID(ref)
}
