package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/event-ticketing/internal/auth"
	"github.com/spec-kit/event-ticketing/internal/domain"
	"github.com/spec-kit/event-ticketing/internal/events"
	"github.com/spec-kit/event-ticketing/internal/repository"
	"github.com/spec-kit/event-ticketing/pkg/util"
)

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	Token        string
	RefreshToken string
	SubjectID    string
	ExpiresAt    time.Time
}

// AuthService coordinates registration, login and the refresh flow. Tokens
// are bearer credentials: once issued they are never revoked server-side,
// and a refresh token is returned unchanged on every exchange.
type AuthService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	verifier   *auth.Verifier
	redis      *redis.Client
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Issuer     *auth.Issuer
	Verifier   *auth.Verifier
	Redis      *redis.Client
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		issuer:     deps.Issuer,
		verifier:   deps.Verifier,
		redis:      deps.Redis,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// Register creates a buyer account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, TokenPair, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, TokenPair{}, util.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, TokenPair{}, util.NewPersistenceFailure(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, util.NewPersistenceFailure(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			Timestamp: time.Now().UTC(),
			Payload:   events.UserRegisteredPayload{UserID: user.ID, Email: user.Email},
		})
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Login authenticates credentials and issues a token pair. Unlike the
// gateway, this boundary reports distinct failure detail.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, TokenPair{}, util.NewAuthenticationRejected("user not found")
		}
		return nil, TokenPair{}, util.NewPersistenceFailure(err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, TokenPair{}, util.NewAuthenticationRejected("account suspended")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, TokenPair{}, util.NewAuthenticationRejected("bad credentials")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The same
// refresh token is handed back unchanged: no rotation, no single-use
// invalidation. Rejections surface as forbidden without claim detail beyond
// the failure category.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	principal, err := s.verifier.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			return TokenPair{}, util.NewForbidden("refresh token expired")
		}
		return TokenPair{}, util.NewForbidden("invalid refresh token")
	}

	user, err := s.users.GetByEmail(ctx, principal.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, util.NewForbidden("unknown subject")
		}
		return TokenPair{}, util.NewPersistenceFailure(err)
	}

	accessToken, expiresAt, err := s.issuer.IssueAccessToken(auth.Principal{
		Subject: user.Email,
		Roles:   user.RoleNames(),
	})
	if err != nil {
		return TokenPair{}, err
	}

	s.recordRefreshSeen(ctx, user.Email)

	return TokenPair{
		Token:        accessToken,
		RefreshToken: refreshToken,
		SubjectID:    user.Email,
		ExpiresAt:    expiresAt,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, subject, currentPassword, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("user", nil)
		}
		return util.NewPersistenceFailure(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return util.NewAuthenticationRejected("bad credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return util.NewPersistenceFailure(err)
	}
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (TokenPair, error) {
	principal := auth.Principal{Subject: user.Email, Roles: user.RoleNames()}

	accessToken, expiresAt, err := s.issuer.IssueAccessToken(principal)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, _, err := s.issuer.IssueRefreshToken(principal)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		Token:        accessToken,
		RefreshToken: refreshToken,
		SubjectID:    user.Email,
		ExpiresAt:    expiresAt,
	}, nil
}

// recordRefreshSeen keeps an operational last-seen marker per subject. It is
// never consulted during verification; refresh tokens stay stateless.
func (s *AuthService) recordRefreshSeen(ctx context.Context, subject string) {
	if s.redis == nil {
		return
	}
	key := "auth:refresh:last_seen:" + subject
	if err := s.redis.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
		s.logger.Debug("refresh last-seen not recorded", zap.Error(err))
	}
}
