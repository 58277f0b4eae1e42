package token

import (
	"errors"
	"strconv"
	"strings"
)

// ErrParse is returned for every token string rejected by this package:
// unknown prefix, missing or mismatched issuer, wrong field count, or
// unparsable numeric fields. Callers must not depend on finer-grained causes.
var ErrParse = errors.New("failed to parse token")

// delimiter separates fields inside a token body. Field values are URLs or
// controlled identifiers and can never contain it.
const delimiter = "\t"

func encodeFields(fields []string) string {
	return strings.Join(fields, delimiter)
}

func decodeFields(body string, want int) ([]string, error) {
	fields := strings.Split(body, delimiter)
	if len(fields) != want {
		return nil, ErrParse
	}
	return fields, nil
}

// reverseDigits reverses the bytes of a decimal string. Applied to the
// issued-at field on both encode and decode; the two applications cancel.
func reverseDigits(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func encodeIssuedAt(issuedAt int64) string {
	return reverseDigits(strconv.FormatInt(issuedAt, 10))
}

func decodeIssuedAt(field string) (int64, error) {
	v, err := strconv.ParseInt(reverseDigits(field), 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrParse
	}
	return v, nil
}

func decodeLifespan(field string) (int64, error) {
	v, err := strconv.ParseInt(field, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrParse
	}
	return v, nil
}
