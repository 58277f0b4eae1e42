package token

// PrefixResidentRefresh identifies resident refresh tokens on the wire.
const PrefixResidentRefresh = "RA~"

// ResidentRefreshToken is a refresh credential for an account resident in
// the issuing cell. It carries no role list; the cross-cell refresh path
// takes roles from the caller, which looks them up out of band.
type ResidentRefreshToken struct {
	base
}

// NewResidentRefreshToken constructs the token from explicit values.
// issuedAt and lifespan are milliseconds; the Authority layer supplies
// clock readings and configured default lifespans.
func NewResidentRefreshToken(issuedAt, lifespan int64, issuer, subject, schema string) ResidentRefreshToken {
	return ResidentRefreshToken{base: base{
		issuedAt: issuedAt,
		lifespan: lifespan,
		issuer:   issuer,
		subject:  subject,
		schema:   schema,
	}}
}

// ParseResidentRefresh decodes a resident refresh token string. The embedded
// issuer must equal expectedIssuer; any structural or numeric defect fails
// with [ErrParse] and no finer cause. Expiry is not checked here.
func ParseResidentRefresh(tokenString, expectedIssuer string) (ResidentRefreshToken, error) {
	fields, err := parseBody(tokenString, PrefixResidentRefresh, expectedIssuer, baseFieldCount)
	if err != nil {
		return ResidentRefreshToken{}, err
	}
	b, err := baseFromFields(fields, expectedIssuer)
	if err != nil {
		return ResidentRefreshToken{}, err
	}
	return ResidentRefreshToken{base: b}, nil
}

// TokenString serializes the token. Round-trip law:
// ParseResidentRefresh(t.TokenString(), t.Issuer()) reconstructs t exactly.
func (t ResidentRefreshToken) TokenString() string {
	f := t.baseFields()
	return PrefixResidentRefresh + encodeFields(f[:])
}

// ID returns the subject concatenated with the decimal issue instant.
func (t ResidentRefreshToken) ID() string { return t.id() }

// RefreshAccessToken mints a new access credential from this refresh token.
// Schema is sticky: an empty schema argument keeps the token's own. An empty
// target yields a resident access token in the issuing cell; a non-empty
// target yields a trans-cell access token whose subject is the composite
// cellURL + "#" + subject, carrying the caller-supplied roles unchanged.
// Pure; the receiver is not invalidated.
func (t ResidentRefreshToken) RefreshAccessToken(issuedAt, lifespan int64, target, cellURL string, roles []Role, schema string) AccessToken {
	if schema == "" {
		schema = t.schema
	}
	if target == "" {
		return NewResidentLocalAccessToken(issuedAt, lifespan, t.issuer, t.subject, schema)
	}
	return NewTransCellAccessToken(issuedAt, lifespan, t.issuer, cellURL+"#"+t.subject, target, roles, schema)
}

// RefreshRefreshToken mints a replacement refresh token with the same
// issuer, subject, and schema. Pure; the receiver is not invalidated.
func (t ResidentRefreshToken) RefreshRefreshToken(issuedAt, lifespan int64) RefreshToken {
	return NewResidentRefreshToken(issuedAt, lifespan, t.issuer, t.subject, t.schema)
}
