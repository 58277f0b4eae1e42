package token

// PrefixResidentAccess identifies resident access tokens on the wire.
const PrefixResidentAccess = "AA~"

// ResidentLocalAccessToken is an access credential for an account resident
// in the issuing cell, verifiable only there. It carries no roles; resident
// authorization is resolved inside the cell.
type ResidentLocalAccessToken struct {
	base
}

// NewResidentLocalAccessToken constructs the token from explicit values.
func NewResidentLocalAccessToken(issuedAt, lifespan int64, issuer, subject, schema string) ResidentLocalAccessToken {
	return ResidentLocalAccessToken{base: base{
		issuedAt: issuedAt,
		lifespan: lifespan,
		issuer:   issuer,
		subject:  subject,
		schema:   schema,
	}}
}

// ParseResidentAccess decodes a resident access token string under the same
// fail-closed rules as every kind: prefix, issuer pin, exact field count,
// numeric fields.
func ParseResidentAccess(tokenString, expectedIssuer string) (ResidentLocalAccessToken, error) {
	fields, err := parseBody(tokenString, PrefixResidentAccess, expectedIssuer, baseFieldCount)
	if err != nil {
		return ResidentLocalAccessToken{}, err
	}
	b, err := baseFromFields(fields, expectedIssuer)
	if err != nil {
		return ResidentLocalAccessToken{}, err
	}
	return ResidentLocalAccessToken{base: b}, nil
}

// TokenString serializes the token.
func (t ResidentLocalAccessToken) TokenString() string {
	f := t.baseFields()
	return PrefixResidentAccess + encodeFields(f[:])
}

func (t ResidentLocalAccessToken) Target() string { return "" }
func (t ResidentLocalAccessToken) Roles() []Role  { return nil }

// PrefixVisitorAccess identifies visitor access tokens on the wire.
const PrefixVisitorAccess = "AL~"

// Visitor access token layout: the base fields plus the granted role list.
const (
	idxVisitorAccessRoles   = 5
	visitorAccessFieldCount = 6
)

// VisitorLocalAccessToken is an access credential for a subject whose
// account lives in another cell, verifiable only inside the issuing cell.
// It embeds the roles granted to the visitor there.
type VisitorLocalAccessToken struct {
	base
	roles []Role
}

// NewVisitorLocalAccessToken constructs the token from explicit values. The
// role slice is copied.
func NewVisitorLocalAccessToken(issuedAt, lifespan int64, issuer, subject, schema string, roles []Role) VisitorLocalAccessToken {
	return VisitorLocalAccessToken{
		base: base{
			issuedAt: issuedAt,
			lifespan: lifespan,
			issuer:   issuer,
			subject:  subject,
			schema:   schema,
		},
		roles: cloneRoles(roles),
	}
}

// ParseVisitorAccess decodes a visitor access token string.
func ParseVisitorAccess(tokenString, expectedIssuer string) (VisitorLocalAccessToken, error) {
	fields, err := parseBody(tokenString, PrefixVisitorAccess, expectedIssuer, visitorAccessFieldCount)
	if err != nil {
		return VisitorLocalAccessToken{}, err
	}
	b, err := baseFromFields(fields[:baseFieldCount], expectedIssuer)
	if err != nil {
		return VisitorLocalAccessToken{}, err
	}
	roles, err := decodeRoles(fields[idxVisitorAccessRoles])
	if err != nil {
		return VisitorLocalAccessToken{}, err
	}
	return VisitorLocalAccessToken{base: b, roles: roles}, nil
}

// TokenString serializes the token.
func (t VisitorLocalAccessToken) TokenString() string {
	var f [visitorAccessFieldCount]string
	b := t.baseFields()
	copy(f[:baseFieldCount], b[:])
	f[idxVisitorAccessRoles] = encodeRoles(t.roles)
	return PrefixVisitorAccess + encodeFields(f[:])
}

func (t VisitorLocalAccessToken) Target() string { return "" }
func (t VisitorLocalAccessToken) Roles() []Role  { return cloneRoles(t.roles) }
