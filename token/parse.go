package token

import "strings"

// parseBody checks issuer presence and the kind prefix, then splits the body
// into exactly count fields. Every defect maps to [ErrParse].
func parseBody(tokenString, prefix, expectedIssuer string, count int) ([]string, error) {
	if expectedIssuer == "" {
		return nil, ErrParse
	}
	if !strings.HasPrefix(tokenString, prefix) {
		return nil, ErrParse
	}
	return decodeFields(tokenString[len(prefix):], count)
}

// Parse decodes a token string of any local kind, dispatching on the type
// prefix in fixed priority order: resident refresh, resident access, visitor
// access, visitor refresh. A string matching none of the known prefixes
// fails closed with [ErrParse]; there is no default kind and no guessing.
//
// Parse does not check expiry. Callers decide validity against their own
// clock via [Token.ValidAt] after a successful parse.
func Parse(tokenString, expectedIssuer string) (Token, error) {
	switch {
	case strings.HasPrefix(tokenString, PrefixResidentRefresh):
		t, err := ParseResidentRefresh(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	case strings.HasPrefix(tokenString, PrefixResidentAccess):
		t, err := ParseResidentAccess(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	case strings.HasPrefix(tokenString, PrefixVisitorAccess):
		t, err := ParseVisitorAccess(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	case strings.HasPrefix(tokenString, PrefixVisitorRefresh):
		t, err := ParseVisitorRefresh(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, ErrParse
	}
}

// ParseRefresh decodes a token string that must be one of the refresh kinds.
// Access-kind prefixes fail with [ErrParse] even when structurally valid.
func ParseRefresh(tokenString, expectedIssuer string) (RefreshToken, error) {
	switch {
	case strings.HasPrefix(tokenString, PrefixResidentRefresh):
		t, err := ParseResidentRefresh(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	case strings.HasPrefix(tokenString, PrefixVisitorRefresh):
		t, err := ParseVisitorRefresh(tokenString, expectedIssuer)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, ErrParse
	}
}
