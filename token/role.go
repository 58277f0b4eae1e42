package token

import "strings"

// Role names a role granted to a visiting subject, optionally scoped to a
// box. Roles are opaque to the refresh transitions: they are carried through
// unchanged, never interpreted.
type Role struct {
	Name string
	Box  string
}

// String renders the role in its wire form, "box:name", or just "name" when
// the role is not box-scoped. Names and boxes are controlled identifiers
// containing no tab, comma, or colon characters.
func (r Role) String() string {
	if r.Box == "" {
		return r.Name
	}
	return r.Box + ":" + r.Name
}

// ParseRole is the inverse of [Role.String].
func ParseRole(s string) (Role, error) {
	if s == "" {
		return Role{}, ErrParse
	}
	box, name, scoped := strings.Cut(s, ":")
	if !scoped {
		return Role{Name: s}, nil
	}
	if box == "" || name == "" {
		return Role{}, ErrParse
	}
	return Role{Name: name, Box: box}, nil
}

const roleSeparator = ","

func encodeRoles(roles []Role) string {
	if len(roles) == 0 {
		return ""
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = r.String()
	}
	return strings.Join(parts, roleSeparator)
}

func decodeRoles(field string) ([]Role, error) {
	if field == "" {
		return nil, nil
	}
	parts := strings.Split(field, roleSeparator)
	roles := make([]Role, len(parts))
	for i, p := range parts {
		r, err := ParseRole(p)
		if err != nil {
			return nil, err
		}
		roles[i] = r
	}
	return roles, nil
}

// cloneRoles copies the slice so token values stay immutable. A nil input
// stays nil; the nil versus empty distinction drives role stickiness on
// visitor refresh.
func cloneRoles(roles []Role) []Role {
	if roles == nil {
		return nil
	}
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
