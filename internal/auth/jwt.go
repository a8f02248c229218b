// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/angelamos/ledger-backend/internal/config"
	"github.com/angelamos/ledger-backend/internal/core"
)

const DefaultAccessTokenTTL = 30 * time.Minute

// UserIDClaim binds a token to the user row it was issued for. The email
// in sub can move to another row after an email change.
const UserIDClaim = "uid"

// Claims is the verified content of an access token.
type Claims struct {
	TokenID   string
	Subject   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 access tokens. It holds no
// mutable state beyond the immutable secret, so one instance is shared by
// all requests.
type TokenManager struct {
	key        jwk.Key
	defaultTTL time.Duration
	now        func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for iat/exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

func NewTokenManager(
	cfg config.AuthConfig,
	opts ...TokenOption,
) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token manager: empty secret")
	}

	if cfg.Algorithm != "" && cfg.Algorithm != config.AlgorithmHS256 {
		return nil, fmt.Errorf(
			"token manager: unsupported algorithm %q",
			cfg.Algorithm,
		)
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	ttl := cfg.AccessTokenExpire
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	m := &TokenManager{
		key:        key,
		defaultTTL: ttl,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *TokenManager) DefaultTTL() time.Duration {
	return m.defaultTTL
}

// Issue mints a token for subject with the configured default lifetime.
func (m *TokenManager) Issue(subject string) (string, *Claims, error) {
	return m.issue(subject, "", m.defaultTTL)
}

// IssueForUser mints a default lifetime token for subject that is also
// bound to userID.
func (m *TokenManager) IssueForUser(
	userID, subject string,
) (string, *Claims, error) {
	if userID == "" {
		return "", nil, fmt.Errorf("issue token: empty user id")
	}
	return m.issue(subject, userID, m.defaultTTL)
}

// IssueWithTTL mints a token that expires ttl after now. A non-positive
// ttl yields a token that is already expired.
func (m *TokenManager) IssueWithTTL(
	subject string,
	ttl time.Duration,
) (string, *Claims, error) {
	return m.issue(subject, "", ttl)
}

func (m *TokenManager) issue(
	subject, userID string,
	ttl time.Duration,
) (string, *Claims, error) {
	if subject == "" {
		return "", nil, fmt.Errorf("issue token: empty subject")
	}

	now := m.now().UTC().Truncate(time.Second)
	claims := &Claims{
		TokenID:   uuid.New().String(),
		Subject:   subject,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	builder := jwt.NewBuilder().
		JwtID(claims.TokenID).
		Subject(claims.Subject).
		IssuedAt(claims.IssuedAt).
		Expiration(claims.ExpiresAt)
	if userID != "" {
		builder = builder.Claim(UserIDClaim, userID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), claims, nil
}

// Verify checks encoding, signature and expiry, in that order, and reports
// the first failure as core.ErrTokenMalformed, core.ErrTokenSignature or
// core.ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenMalformed)
	}

	if _, err := jwt.ParseInsecure([]byte(tokenString)); err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenMalformed)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenSignature)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenMalformed,
		)
	}

	expiresAt, ok := token.Expiration()
	if !ok {
		return nil, fmt.Errorf(
			"verify token: missing expiry: %w",
			core.ErrTokenMalformed,
		)
	}

	if !m.now().Before(expiresAt) {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
	}

	claims := &Claims{
		Subject:   subject,
		ExpiresAt: expiresAt,
	}

	if jti, ok := token.JwtID(); ok {
		claims.TokenID = jti
	}

	if iat, ok := token.IssuedAt(); ok {
		claims.IssuedAt = iat
	}

	var userID string
	if err := token.Get(UserIDClaim, &userID); err == nil {
		claims.UserID = userID
	}

	return claims, nil
}
