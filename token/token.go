package token

import "strconv"

// Token is the read surface shared by every token kind. All implementations
// are immutable values; deriving a new credential never mutates an existing
// one.
type Token interface {
	// IssuedAt is the issue instant in milliseconds since epoch, > 0.
	IssuedAt() int64
	// Lifespan is the validity window in milliseconds, > 0.
	Lifespan() int64
	// Issuer is the canonical URL of the issuing cell. Never empty.
	Issuer() string
	// Subject is the identity the token grants access on behalf of.
	Subject() string
	// Schema identifies the authenticated client application's data schema.
	// Empty when no schema was authenticated.
	Schema() string
	// ExpiresAt is IssuedAt + Lifespan, milliseconds since epoch.
	ExpiresAt() int64
	// ValidAt reports whether the token is still valid at the given time in
	// milliseconds since epoch. Validity holds strictly before expiry.
	ValidAt(at int64) bool
}

// AccessToken is implemented by kinds usable as access credentials.
type AccessToken interface {
	Token
	// Target is the cell URL the token is intended to be presented to.
	// Empty for cell-local kinds.
	Target() string
	// Roles lists the roles granted to the subject, when the kind carries
	// any. The slice is a copy; mutating it does not affect the token.
	Roles() []Role
}

// RefreshToken is implemented by kinds exchangeable for new credentials
// without re-authenticating the subject.
type RefreshToken interface {
	Token
	// ID is the subject concatenated with the decimal issue instant. A
	// dedup and logging key, not a secret.
	ID() string
	// RefreshAccessToken mints a new access credential. An empty schema
	// keeps the refresh token's own. An empty target selects a cell-local
	// access token; a non-empty target selects a trans-cell access token
	// for that cell, carrying the supplied roles.
	RefreshAccessToken(issuedAt, lifespan int64, target, cellURL string, roles []Role, schema string) AccessToken
	// RefreshRefreshToken mints a replacement refresh token with the same
	// identity and a new issue instant.
	RefreshRefreshToken(issuedAt, lifespan int64) RefreshToken
}

// TokenStringer is implemented by kinds with a local wire form.
type TokenStringer interface {
	TokenString() string
}

// base carries the five fields common to all kinds.
type base struct {
	issuedAt int64
	lifespan int64
	issuer   string
	subject  string
	schema   string
}

func (b base) IssuedAt() int64 { return b.issuedAt }
func (b base) Lifespan() int64 { return b.lifespan }
func (b base) Issuer() string  { return b.issuer }
func (b base) Subject() string { return b.subject }
func (b base) Schema() string  { return b.schema }

func (b base) ExpiresAt() int64      { return b.issuedAt + b.lifespan }
func (b base) ValidAt(at int64) bool { return at < b.issuedAt+b.lifespan }

func (b base) id() string { return b.subject + strconv.FormatInt(b.issuedAt, 10) }

// Field order inside every local token body. The base layout covers the five
// shared fields; kinds with extra fields extend it with their own index
// constants. Each TokenString implementation writes into a fixed-size array
// sized by its field count, keeping the layout checked at compile time.
const (
	idxIssuedAt = 0
	idxLifespan = 1
	idxSubject  = 2
	idxSchema   = 3
	idxIssuer   = 4

	baseFieldCount = 5
)

// baseFromFields reconstructs the shared fields. The embedded issuer field
// must equal the issuer the caller is parsing against; the constructed value
// then carries that caller-asserted issuer. Foreign-issuer bodies fail
// closed.
func baseFromFields(fields []string, expectedIssuer string) (base, error) {
	issuedAt, err := decodeIssuedAt(fields[idxIssuedAt])
	if err != nil {
		return base{}, err
	}
	lifespan, err := decodeLifespan(fields[idxLifespan])
	if err != nil {
		return base{}, err
	}
	if fields[idxIssuer] != expectedIssuer {
		return base{}, ErrParse
	}
	return base{
		issuedAt: issuedAt,
		lifespan: lifespan,
		issuer:   expectedIssuer,
		subject:  fields[idxSubject],
		schema:   fields[idxSchema],
	}, nil
}

func (b base) baseFields() [baseFieldCount]string {
	var f [baseFieldCount]string
	f[idxIssuedAt] = encodeIssuedAt(b.issuedAt)
	f[idxLifespan] = strconv.FormatInt(b.lifespan, 10)
	f[idxSubject] = b.subject
	f[idxSchema] = b.schema
	f[idxIssuer] = b.issuer
	return f
}
