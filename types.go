package goCellAuth

import "github.com/MrEthical07/goCellAuth/token"

// ExchangeResult is returned by [Authority.Exchange]. It carries the freshly
// minted access credential, the rotated refresh token, and their wire forms.
// AccessTokenString is empty when the minted kind has no local wire form
// (cross-cell access tokens are serialized by the signature collaborator).
type ExchangeResult struct {
	AccessToken  token.AccessToken
	RefreshToken token.RefreshToken

	AccessTokenString  string
	RefreshTokenString string

	// Expiry instants in milliseconds since epoch.
	AccessExpiresAt  int64
	RefreshExpiresAt int64
}

// wireForm returns the local serialization when the kind has one.
func wireForm(t token.Token) string {
	if ts, ok := t.(token.TokenStringer); ok {
		return ts.TokenString()
	}
	return ""
}
