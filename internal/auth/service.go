// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/angelamos/ledger-backend/internal/core"
	"github.com/angelamos/ledger-backend/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

const TokenTypeBearer = "bearer"

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	IsDeleted    bool
	// Visible is computed by the provider from its own lifecycle rule.
	Visible      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Service is the session facade used by route handlers: it composes the
// password hasher, the token manager and the revocation store.
type Service struct {
	tokens       *TokenManager
	revocations  RevocationStore
	hasher       *core.PasswordHasher
	userProvider UserProvider
}

func NewService(
	tokens *TokenManager,
	revocations RevocationStore,
	hasher *core.PasswordHasher,
	userProvider UserProvider,
) *Service {
	return &Service{
		tokens:       tokens,
		revocations:  revocations,
		hasher:       hasher,
		userProvider: userProvider,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// always verify so an unknown email costs as much as a wrong password
			_, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			core.AddSpanEvent(ctx, "auth.login_failed")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash := s.hasher.VerifyTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if !valid || !user.Visible {
		core.AddSpanEvent(ctx, "auth.login_failed")
		slog.InfoContext(ctx, "login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		} else {
			slog.InfoContext(ctx, "password digest upgraded", "user_id", user.ID)
		}
	}

	token, _, err := s.tokens.IssueForUser(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	core.AddSpanEvent(ctx, "auth.login",
		attribute.String("user.id", user.ID),
	)
	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(s.tokens.DefaultTTL() / time.Second),
	}, nil
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserInfo, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Logout revokes token. The revocation check runs before verification so
// a second logout with the same token reports core.ErrTokenRevoked rather
// than a verification error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("logout: %w", core.ErrTokenMissing)
	}

	revoked, err := s.revocations.IsRevoked(ctx, token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if revoked {
		return fmt.Errorf("logout: %w", core.ErrTokenRevoked)
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	added, err := s.revocations.Revoke(ctx, token, claims.ExpiresAt)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !added {
		return fmt.Errorf("logout: %w", core.ErrTokenRevoked)
	}

	core.AddSpanEvent(ctx, "auth.logout",
		attribute.String("token.id", claims.TokenID),
	)
	slog.InfoContext(ctx, "token revoked", "token_id", claims.TokenID)

	return nil
}

// ResolveCurrentUser returns the visible user a token speaks for. The row
// found by the sub email must carry the token's uid claim. Every
// authentication failure wraps core.ErrUnauthorized together with its
// cause; other errors are infrastructure failures.
func (s *Service) ResolveCurrentUser(
	ctx context.Context,
	token string,
) (*UserInfo, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, s.unauthorized(ctx, err)
	}

	revoked, err := s.revocations.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	if revoked {
		return nil, s.unauthorized(ctx, core.ErrTokenRevoked)
	}

	user, err := s.userProvider.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, s.unauthorized(ctx, err)
		}
		return nil, fmt.Errorf("resolve current user: %w", err)
	}

	if claims.UserID == "" || claims.UserID != user.ID {
		return nil, s.unauthorized(ctx, core.ErrTokenUser)
	}

	if !user.Visible {
		return nil, s.unauthorized(ctx, core.ErrUserDeleted)
	}

	return user, nil
}

// Authenticate adapts ResolveCurrentUser to the middleware contract.
func (s *Service) Authenticate(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	user, err := s.ResolveCurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *Service) unauthorized(ctx context.Context, cause error) error {
	core.AddSpanEvent(ctx, "auth.resolve_failed",
		attribute.String("cause", cause.Error()),
	)
	return fmt.Errorf("resolve current user: %w: %w", core.ErrUnauthorized, cause)
}

var _ middleware.Resolver = (*Service)(nil)
