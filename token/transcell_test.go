package token

import (
	"errors"
	"strings"
	"testing"
)

func TestVisitorRefreshRoundTrip(t *testing.T) {
	roles := []Role{{Name: "admin", Box: "box1"}}
	tok := NewVisitorRefreshToken(1000, 86400000, testIssuer, "https://cell2.example/#user1", "", "https://cell2.example/", roles)
	s := tok.TokenString()
	if !strings.HasPrefix(s, PrefixVisitorRefresh) {
		t.Fatalf("expected %q prefix, got %q", PrefixVisitorRefresh, s)
	}
	got, err := ParseVisitorRefresh(s, testIssuer)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Subject() != tok.Subject() || got.OrigIssuer() != "https://cell2.example/" {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, tok)
	}
	if !rolesEqual(got.GrantedRoles(), roles) {
		t.Fatalf("roles: got %v, want %v", got.GrantedRoles(), roles)
	}
	if got.TokenString() != s {
		t.Fatalf("re-encoding mismatch:\n got %q\nwant %q", got.TokenString(), s)
	}
}

func TestVisitorRefreshRequiresOrigIssuer(t *testing.T) {
	tok := NewVisitorRefreshToken(1000, 500, testIssuer, "user1", "", "https://cell2.example/", nil)
	s := tok.TokenString()
	// Blank out the origIssuer field and keep the count intact.
	fields := strings.Split(strings.TrimPrefix(s, PrefixVisitorRefresh), "\t")
	fields[idxVisitorRefreshOrigIssuer] = ""
	broken := PrefixVisitorRefresh + strings.Join(fields, "\t")
	if _, err := ParseVisitorRefresh(broken, testIssuer); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for empty origin issuer, got %v", err)
	}
}

func TestVisitorRefreshAccessKeepsGrantedRoles(t *testing.T) {
	granted := []Role{{Name: "viewer", Box: "box1"}}
	rt := NewVisitorRefreshToken(1000, 500, testIssuer, "https://cell2.example/#user1", "", "https://cell2.example/", granted)

	// nil means "no opinion": the stored grant applies.
	at := rt.RefreshAccessToken(2000, 3600000, "", testIssuer, nil, "")
	acc, ok := at.(VisitorLocalAccessToken)
	if !ok {
		t.Fatalf("expected VisitorLocalAccessToken, got %T", at)
	}
	if !rolesEqual(acc.Roles(), granted) {
		t.Fatalf("expected stored roles %v, got %v", granted, acc.Roles())
	}

	// An explicit empty slice narrows the grant to nothing.
	at = rt.RefreshAccessToken(2000, 3600000, "", testIssuer, []Role{}, "")
	if got := at.Roles(); len(got) != 0 {
		t.Fatalf("expected no roles, got %v", got)
	}

	// An explicit slice replaces the grant.
	narrowed := []Role{{Name: "viewer"}}
	at = rt.RefreshAccessToken(2000, 3600000, "", testIssuer, narrowed, "")
	if !rolesEqual(at.Roles(), narrowed) {
		t.Fatalf("expected %v, got %v", narrowed, at.Roles())
	}
}

func TestVisitorRefreshAccessCrossCell(t *testing.T) {
	rt := NewVisitorRefreshToken(1000, 500, testIssuer, "https://cell2.example/#user1", "", "https://cell2.example/", nil)
	at := rt.RefreshAccessToken(2000, 3600000, "https://cell3.example/", testIssuer, nil, "")
	tc, ok := at.(TransCellAccessToken)
	if !ok {
		t.Fatalf("expected TransCellAccessToken, got %T", at)
	}
	// The visiting subject is already absolute; it must not be recomposed.
	if got := tc.Subject(); got != "https://cell2.example/#user1" {
		t.Fatalf("subject: got %q, want %q", got, "https://cell2.example/#user1")
	}
	if tc.Target() != "https://cell3.example/" {
		t.Fatalf("target: got %q", tc.Target())
	}
}

func TestVisitorRefreshRotationPreservesOrigin(t *testing.T) {
	granted := []Role{{Name: "viewer"}}
	rt := NewVisitorRefreshToken(1000, 500, testIssuer, "https://cell2.example/#user1", "https://app.example/", "https://cell2.example/", granted)
	next := rt.RefreshRefreshToken(5000, 700)
	got, ok := next.(VisitorRefreshToken)
	if !ok {
		t.Fatalf("expected VisitorRefreshToken, got %T", next)
	}
	if got.OrigIssuer() != "https://cell2.example/" {
		t.Fatalf("origin issuer must carry over, got %q", got.OrigIssuer())
	}
	if !rolesEqual(got.GrantedRoles(), granted) {
		t.Fatalf("granted roles must carry over, got %v", got.GrantedRoles())
	}
	if got.Schema() != "https://app.example/" {
		t.Fatalf("schema must carry over, got %q", got.Schema())
	}
}

func TestTransCellAccessToken(t *testing.T) {
	roles := []Role{{Name: "admin", Box: "box1"}}
	tc := NewTransCellAccessToken(1000, 3600000, testIssuer, testIssuer+"#user1", "https://cell2.example/", roles, "")
	if tc.Subject() != testIssuer+"#user1" {
		t.Fatalf("subject: got %q", tc.Subject())
	}
	if tc.Target() != "https://cell2.example/" {
		t.Fatalf("target: got %q", tc.Target())
	}
	if !rolesEqual(tc.Roles(), roles) {
		t.Fatalf("roles: got %v, want %v", tc.Roles(), roles)
	}
	if !tc.ValidAt(1000+3600000-1) || tc.ValidAt(1000+3600000) {
		t.Fatalf("unexpected validity window")
	}
}
