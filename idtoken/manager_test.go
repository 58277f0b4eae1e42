package idtoken

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-secret-secret-secret"

func newEdKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	return pub, priv
}

func signHS256(t *testing.T, claims Claims) string {
	t.Helper()
	raw, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func baseClaims() Claims {
	return Claims{
		Nonce: "n-123",
		RegisteredClaims: gjwt.RegisteredClaims{
			Issuer:    "https://idp.example/",
			Subject:   "user1",
			Audience:  gjwt.ClaimStrings{"https://cell1.example/"},
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
			IssuedAt:  gjwt.NewNumericDate(time.Now()),
		},
	}
}

func newHS256Manager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Issuer:        "https://idp.example/",
		Audience:      "https://cell1.example/",
		Leeway:        30 * time.Second,
		SigningMethod: MethodHS256,
		Key:           []byte(testSecret),
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerValidation(t *testing.T) {
	pub, _ := newEdKeys(t)

	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing issuer", Config{SigningMethod: MethodHS256, Key: []byte(testSecret)}},
		{"missing key", Config{Issuer: "i", SigningMethod: MethodHS256}},
		{"unsupported method", Config{Issuer: "i", SigningMethod: "rs256", Key: []byte(testSecret)}},
		{"negative leeway", Config{Issuer: "i", SigningMethod: MethodHS256, Key: []byte(testSecret), Leeway: -time.Second}},
		{"excessive leeway", Config{Issuer: "i", SigningMethod: MethodHS256, Key: []byte(testSecret), Leeway: time.Hour}},
		{"bad ed25519 key", Config{Issuer: "i", SigningMethod: MethodEd25519, Key: []byte("short")}},
		{"empty kid in verify keys", Config{Issuer: "i", SigningMethod: MethodEd25519, VerifyKeys: map[string][]byte{" ": pub}}},
		{"pinned kid absent", Config{Issuer: "i", SigningMethod: MethodEd25519, KeyID: "k9", VerifyKeys: map[string][]byte{"k1": pub}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewManager(c.cfg)
			assert.Error(t, err)
		})
	}

	m, err := NewManager(Config{Issuer: "i", SigningMethod: MethodEd25519, Key: pub})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestVerifyHS256(t *testing.T) {
	m := newHS256Manager(t)
	raw := signHS256(t, baseClaims())

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Subject)
	assert.Equal(t, "https://idp.example/", claims.Issuer)
	assert.Equal(t, "n-123", claims.Nonce)
}

func TestVerifyEd25519RawKey(t *testing.T) {
	pub, priv := newEdKeys(t)
	m, err := NewManager(Config{
		Issuer:        "https://idp.example/",
		SigningMethod: MethodEd25519,
		Key:           pub,
	})
	require.NoError(t, err)

	raw, err := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, baseClaims()).SignedString(priv)
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Subject)
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	m := newHS256Manager(t)
	_, priv := newEdKeys(t)

	raw, err := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, baseClaims()).SignedString(priv)
	require.NoError(t, err)

	_, err = m.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsBadClaims(t *testing.T) {
	m := newHS256Manager(t)

	mutate := func(fn func(*Claims)) string {
		c := baseClaims()
		fn(&c)
		return signHS256(t, c)
	}

	cases := []struct {
		name string
		raw  string
	}{
		{"wrong issuer", mutate(func(c *Claims) { c.Issuer = "https://other-idp.example/" })},
		{"wrong audience", mutate(func(c *Claims) { c.Audience = gjwt.ClaimStrings{"https://cell2.example/"} })},
		{"expired", mutate(func(c *Claims) {
			c.ExpiresAt = gjwt.NewNumericDate(time.Now().Add(-2 * time.Minute))
		})},
		{"missing exp", mutate(func(c *Claims) { c.ExpiresAt = nil })},
		{"missing iat", mutate(func(c *Claims) { c.IssuedAt = nil })},
		{"future iat", mutate(func(c *Claims) {
			c.IssuedAt = gjwt.NewNumericDate(time.Now().Add(time.Hour))
		})},
		{"missing sub", mutate(func(c *Claims) { c.Subject = "" })},
		{"garbage", "not.a.jwt"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := m.Verify(c.raw)
			assert.Error(t, err)
		})
	}
}

func TestVerifyExpiryWithinLeeway(t *testing.T) {
	m := newHS256Manager(t)
	c := baseClaims()
	c.ExpiresAt = gjwt.NewNumericDate(time.Now().Add(-15 * time.Second))

	_, err := m.Verify(signHS256(t, c))
	assert.NoError(t, err)
}

func TestVerifyKidResolution(t *testing.T) {
	pub1, priv1 := newEdKeys(t)
	pub2, _ := newEdKeys(t)
	m, err := NewManager(Config{
		Issuer:        "https://idp.example/",
		SigningMethod: MethodEd25519,
		VerifyKeys: map[string][]byte{
			"k1": pub1,
			"k2": pub2,
		},
	})
	require.NoError(t, err)

	sign := func(kid string) string {
		tok := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, baseClaims())
		if kid != "" {
			tok.Header["kid"] = kid
		}
		raw, err := tok.SignedString(priv1)
		require.NoError(t, err)
		return raw
	}

	_, err = m.Verify(sign("k1"))
	assert.NoError(t, err)

	_, err = m.Verify(sign(""))
	assert.Error(t, err, "missing kid must fail")

	_, err = m.Verify(sign("k9"))
	assert.Error(t, err, "unknown kid must fail")

	// kid resolves to k2 but the signature is from k1.
	_, err = m.Verify(sign("k2"))
	assert.Error(t, err, "kid and signing key mismatch must fail")
}

func TestNewNonce(t *testing.T) {
	a := NewNonce()
	b := NewNonce()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
