package token

// PrefixVisitorRefresh identifies visitor refresh tokens on the wire.
const PrefixVisitorRefresh = "RT~"

// Visitor refresh token layout: the base fields plus the cell that
// originally authenticated the subject and the roles granted here.
const (
	idxVisitorRefreshOrigIssuer = 5
	idxVisitorRefreshRoles      = 6
	visitorRefreshFieldCount    = 7
)

// VisitorRefreshToken is a refresh credential for a subject authenticated by
// another cell. Its subject is already an absolute URL, and it remembers the
// originally authenticating cell and the roles granted in this one, so a
// later refresh can re-mint visitor credentials without a fresh cross-cell
// assertion.
type VisitorRefreshToken struct {
	base
	origIssuer string
	roles      []Role
}

// NewVisitorRefreshToken constructs the token from explicit values. The role
// slice is copied.
func NewVisitorRefreshToken(issuedAt, lifespan int64, issuer, subject, schema, origIssuer string, roles []Role) VisitorRefreshToken {
	return VisitorRefreshToken{
		base: base{
			issuedAt: issuedAt,
			lifespan: lifespan,
			issuer:   issuer,
			subject:  subject,
			schema:   schema,
		},
		origIssuer: origIssuer,
		roles:      cloneRoles(roles),
	}
}

// ParseVisitorRefresh decodes a visitor refresh token string. An empty
// embedded origIssuer field is a parse failure; the kind requires it.
func ParseVisitorRefresh(tokenString, expectedIssuer string) (VisitorRefreshToken, error) {
	fields, err := parseBody(tokenString, PrefixVisitorRefresh, expectedIssuer, visitorRefreshFieldCount)
	if err != nil {
		return VisitorRefreshToken{}, err
	}
	b, err := baseFromFields(fields[:baseFieldCount], expectedIssuer)
	if err != nil {
		return VisitorRefreshToken{}, err
	}
	origIssuer := fields[idxVisitorRefreshOrigIssuer]
	if origIssuer == "" {
		return VisitorRefreshToken{}, ErrParse
	}
	roles, err := decodeRoles(fields[idxVisitorRefreshRoles])
	if err != nil {
		return VisitorRefreshToken{}, err
	}
	return VisitorRefreshToken{base: b, origIssuer: origIssuer, roles: roles}, nil
}

// OrigIssuer is the cell that originally authenticated the subject.
func (t VisitorRefreshToken) OrigIssuer() string { return t.origIssuer }

// GrantedRoles lists the roles granted to the visitor in the issuing cell.
// The slice is a copy.
func (t VisitorRefreshToken) GrantedRoles() []Role { return cloneRoles(t.roles) }

// TokenString serializes the token.
func (t VisitorRefreshToken) TokenString() string {
	var f [visitorRefreshFieldCount]string
	b := t.baseFields()
	copy(f[:baseFieldCount], b[:])
	f[idxVisitorRefreshOrigIssuer] = t.origIssuer
	f[idxVisitorRefreshRoles] = encodeRoles(t.roles)
	return PrefixVisitorRefresh + encodeFields(f[:])
}

// ID returns the subject concatenated with the decimal issue instant.
func (t VisitorRefreshToken) ID() string { return t.id() }

// RefreshAccessToken mints a new access credential for the visitor. Schema
// is sticky like on the resident kind. Roles are sticky too: a nil roles
// argument keeps the stored grant, while a non-nil slice (even empty)
// overrides it. The subject is already absolute, so the trans-cell path
// passes it through without recomposing against cellURL.
func (t VisitorRefreshToken) RefreshAccessToken(issuedAt, lifespan int64, target, cellURL string, roles []Role, schema string) AccessToken {
	if schema == "" {
		schema = t.schema
	}
	if roles == nil {
		roles = t.roles
	}
	if target == "" {
		return NewVisitorLocalAccessToken(issuedAt, lifespan, t.issuer, t.subject, schema, roles)
	}
	return NewTransCellAccessToken(issuedAt, lifespan, t.issuer, t.subject, target, roles, schema)
}

// RefreshRefreshToken mints a replacement visitor refresh token preserving
// the original issuer and the role grant.
func (t VisitorRefreshToken) RefreshRefreshToken(issuedAt, lifespan int64) RefreshToken {
	return NewVisitorRefreshToken(issuedAt, lifespan, t.issuer, t.subject, t.schema, t.origIssuer, t.roles)
}

// TransCellAccessToken is an access credential presented to a cell other
// than its issuer, carrying the role list that establishes the subject's
// authorization there. Its signed wire representation is produced by the
// signing collaborator; this package only models the value, so the kind has
// no TokenString and no parse arm.
type TransCellAccessToken struct {
	base
	target string
	roles  []Role
}

// NewTransCellAccessToken constructs the token from explicit values. The
// role slice is copied. Subject is the composite cellURL + "#" + subject for
// residents, or the already absolute subject URL for visitors.
func NewTransCellAccessToken(issuedAt, lifespan int64, issuer, subject, target string, roles []Role, schema string) TransCellAccessToken {
	return TransCellAccessToken{
		base: base{
			issuedAt: issuedAt,
			lifespan: lifespan,
			issuer:   issuer,
			subject:  subject,
			schema:   schema,
		},
		target: target,
		roles:  cloneRoles(roles),
	}
}

// Target is the cell URL the token is intended to be presented to.
func (t TransCellAccessToken) Target() string { return t.target }

// Roles lists the granted roles. The slice is a copy.
func (t TransCellAccessToken) Roles() []Role { return cloneRoles(t.roles) }
