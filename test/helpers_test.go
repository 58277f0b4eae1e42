//go:build integration
// +build integration

package test

import (
	"testing"
	"time"

	goCellAuth "github.com/MrEthical07/goCellAuth"
	"github.com/MrEthical07/goCellAuth/token"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newCellAuthority(t *testing.T, cellURL string, clock func() time.Time) *goCellAuth.Authority {
	t.Helper()

	builder := goCellAuth.New().
		WithCellURL(cellURL).
		WithMetricsEnabled(true)
	if clock != nil {
		builder = builder.WithClock(clock)
	}

	authority, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(authority.Close)

	return authority
}

func rolesEqual(a, b []token.Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
