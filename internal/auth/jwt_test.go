// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ledger-backend/internal/config"
	"github.com/angelamos/ledger-backend/internal/core"
)

const (
	testSecret  = "test-secret-0123456789abcdef0123"
	otherSecret = "other-secret-0123456789abcdef012"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestTokens(t *testing.T, secret string, clock *fakeClock) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(config.AuthConfig{
		Secret:    secret,
		Algorithm: config.AlgorithmHS256,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func signForeign(t *testing.T, method gojwt.SigningMethod, secret string, claims gojwt.MapClaims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	for _, subject := range []string{"a@x.com", "someone+tag@example.org"} {
		token, issued, err := m.Issue(subject)
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(token, ".")))

		claims, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, subject, claims.Subject)
		assert.Equal(t, issued.TokenID, claims.TokenID)
		assert.True(t, claims.IssuedAt.Equal(clock.Now()))
		assert.Equal(t, DefaultAccessTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt))
	}
}

func TestIssueUsesConfiguredTTL(t *testing.T) {
	clock := newClock()
	m, err := NewTokenManager(config.AuthConfig{
		Secret:            testSecret,
		AccessTokenExpire: 5 * time.Minute,
	}, WithClock(clock.Now))
	require.NoError(t, err)

	_, claims, err := m.Issue("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt))
	assert.Equal(t, 5*time.Minute, m.DefaultTTL())
}

func TestIssueZeroTTLIsExpired(t *testing.T) {
	m := newTestTokens(t, testSecret, newClock())

	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, _, err := m.IssueWithTTL("a@x.com", ttl)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, core.ErrTokenExpired)
		assert.NotErrorIs(t, err, core.ErrTokenInvalid)
	}
}

func TestVerifyExpiresWithClock(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	token, _, err := m.IssueWithTTL("a@x.com", time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = m.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyWrongSignatureBytes(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)
	other := newTestTokens(t, otherSecret, clock)

	token, _, err := m.Issue("a@x.com")
	require.NoError(t, err)
	foreign, _, err := other.Issue("a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	foreignSig := strings.Split(foreign, ".")[2]
	tampered := parts[0] + "." + parts[1] + "." + foreignSig

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, core.ErrTokenSignature)
	assert.NotErrorIs(t, err, core.ErrTokenMalformed)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTamperedPayload(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	token, _, err := m.Issue("a@x.com")
	require.NoError(t, err)
	forged := signForeign(t, gojwt.SigningMethodHS256, otherSecret, gojwt.MapClaims{
		"sub": "admin@x.com",
		"exp": clock.Now().Add(time.Hour).Unix(),
	})

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.Verify(spliced)
	assert.ErrorIs(t, err, core.ErrTokenSignature)
}

func TestVerifyInteropWithOtherLibrary(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	token := signForeign(t, gojwt.SigningMethodHS256, testSecret, gojwt.MapClaims{
		"sub": "a@x.com",
		"iat": clock.Now().Unix(),
		"exp": clock.Now().Add(time.Minute).Unix(),
	})

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Empty(t, claims.TokenID)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	token := signForeign(t, gojwt.SigningMethodHS512, testSecret, gojwt.MapClaims{
		"sub": "a@x.com",
		"exp": clock.Now().Add(time.Minute).Unix(),
	})

	_, err := m.Verify(token)
	assert.ErrorIs(t, err, core.ErrTokenSignature)
}

func TestVerifyMalformed(t *testing.T) {
	m := newTestTokens(t, testSecret, newClock())

	for _, token := range []string{"", "not-a-token", "a.b", "!!!.???.***"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, core.ErrTokenMalformed, "token %q", token)
	}
}

func TestVerifyMissingClaims(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	noSubject := signForeign(t, gojwt.SigningMethodHS256, testSecret, gojwt.MapClaims{
		"exp": clock.Now().Add(time.Minute).Unix(),
	})
	_, err := m.Verify(noSubject)
	assert.ErrorIs(t, err, core.ErrTokenMalformed)

	noExpiry := signForeign(t, gojwt.SigningMethodHS256, testSecret, gojwt.MapClaims{
		"sub": "a@x.com",
	})
	_, err = m.Verify(noExpiry)
	assert.ErrorIs(t, err, core.ErrTokenMalformed)
}

func TestNewTokenManagerRejectsBadConfig(t *testing.T) {
	_, err := NewTokenManager(config.AuthConfig{})
	assert.ErrorContains(t, err, "empty secret")

	_, err = NewTokenManager(config.AuthConfig{Secret: testSecret, Algorithm: "RS256"})
	assert.ErrorContains(t, err, "unsupported algorithm")
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	m := newTestTokens(t, testSecret, newClock())
	_, _, err := m.Issue("")
	assert.Error(t, err)
}

func TestIssueForUserCarriesUserID(t *testing.T) {
	m := newTestTokens(t, testSecret, newClock())

	token, issued, err := m.IssueForUser("user-1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", issued.UserID)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Subject)

	plain, _, err := m.Issue("a@x.com")
	require.NoError(t, err)
	claims, err = m.Verify(plain)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)

	_, _, err = m.IssueForUser("", "a@x.com")
	assert.Error(t, err)
}

func TestVerifyIgnoresNonStringUserID(t *testing.T) {
	clock := newClock()
	m := newTestTokens(t, testSecret, clock)

	token := signForeign(t, gojwt.SigningMethodHS256, testSecret, gojwt.MapClaims{
		"sub": "a@x.com",
		"uid": 42,
		"exp": clock.Now().Add(time.Minute).Unix(),
	})

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
}
