// Package services contains server-side business logic. This file implements
// UserService: registration, login, token checks, logout and password reset.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/logging"
	"github.com/guardianeye/guardianeye/internal/server/auth"
	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/notify"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
)

// notifyTimeout bounds one background reset notification.
const notifyTimeout = 5 * time.Second

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Register / Login: verify credentials and mint session tokens
// - Authorize / Logout: check and revoke session tokens
// - RequestPasswordReset / ResetPassword: single-use reset secrets
type UserService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	jwtSecret          []byte
	tokenValidity      time.Duration
	resetTokenValidity time.Duration
	resetURLBase       string
	denylist           auth.Denylist
	notifier           notify.Notifier
	log                logging.Logger
	now                func() time.Time
	pending            sync.WaitGroup
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	denylist auth.Denylist, notifier notify.Notifier, log logging.Logger) *UserService {
	return &UserService{
		db:                 db,
		repomanager:        m,
		jwtSecret:          []byte(cfg.SecretKey),
		tokenValidity:      cfg.TokenValidityDuration,
		resetTokenValidity: cfg.ResetTokenValidityDuration,
		resetURLBase:       cfg.ResetURLBase,
		denylist:           denylist,
		notifier:           notifier,
		log:                log.With("service", "users"),
		now:                time.Now,
	}
}

// Register creates a user and returns it with a fresh session token.
// A taken e-mail yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	email = common.NormalizeEmail(email)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials. Unknown e-mail and wrong password both yield
// common.ErrorUnauthorized after a bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckDummyPassword(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Authorize validates a session token and returns its claims. Revoked tokens
// yield common.ErrInvalidToken.
func (s *UserService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Warn(ctx, "denylist lookup failed", "error", err)
			return nil, common.ErrInvalidToken
		}
		if revoked {
			return nil, common.ErrInvalidToken
		}
	}

	return claims, nil
}

// Logout revokes the token described by claims until its natural expiry.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.denylist == nil || claims.ID == "" {
		return nil
	}

	until := s.now().Add(s.tokenValidity)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	if err := s.denylist.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a reset secret for a registered e-mail and hands
// it to the notifier in the background. Unknown addresses are ignored so
// callers cannot tell which accounts exist. Notifier failures are logged only.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Debug(ctx, "password reset for unknown email")
			return nil
		}
		return fmt.Errorf("error looking up user: %w", err)
	}

	raw, digest, err := auth.NewResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	if err := repo.SetResetToken(ctx, user.ID, digest, s.now().Add(s.resetTokenValidity)); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	resetURL := s.resetURLBase + raw
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyPasswordReset(nctx, user.Email, raw, resetURL); err != nil {
			s.log.Error(nctx, "password reset notification failed", "user_id", user.ID, "error", err)
		}
	}()

	return nil
}

// Drain waits for reset notifications still in flight.
func (s *UserService) Drain() {
	s.pending.Wait()
}

// ResetPassword sets a new password for the holder of rawToken. Unknown,
// used or expired tokens yield common.ErrInvalidResetToken.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, password string) error {
	if password == "" {
		return fmt.Errorf("password is required: %w", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	userID, err := repo.ResetPassword(ctx, auth.HashResetToken(rawToken), hash, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidResetToken
		}
		return fmt.Errorf("error resetting password: %w", err)
	}

	s.log.Info(ctx, "password reset", "user_id", userID)
	return nil
}
