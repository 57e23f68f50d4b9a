package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guardianeye/guardianeye/internal/dbx"
	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
	usersrepo "github.com/guardianeye/guardianeye/internal/server/repositories/users"
)

var errDBDown = errors.New("db down")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.TokenValidityDuration = time.Hour
	cfg.ResetTokenValidityDuration = 10 * time.Minute
	cfg.ResetURLBase = "http://localhost:5173/reset-password/"
	return cfg
}

type sentReset struct {
	email, token, url string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentReset
	err  error
}

func (n *recordingNotifier) NotifyPasswordReset(ctx context.Context, email, rawToken, resetURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentReset{email: email, token: rawToken, url: resetURL})
	return n.err
}

// blockingNotifier holds each delivery until release is closed.
type blockingNotifier struct {
	release chan struct{}
	done    chan struct{}
	ctxErr  error
}

func (n *blockingNotifier) NotifyPasswordReset(ctx context.Context, _, _, _ string) error {
	<-n.release
	n.ctxErr = ctx.Err()
	close(n.done)
	return nil
}

// brokenUsersRepo fails every call with errDBDown.
type brokenUsersRepo struct{}

func (brokenUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errDBDown
}
func (brokenUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, errDBDown
}
func (brokenUsersRepo) SetResetToken(context.Context, string, string, time.Time) error {
	return errDBDown
}
func (brokenUsersRepo) ResetPassword(context.Context, string, string, time.Time) (string, error) {
	return "", errDBDown
}

type brokenUsersManager struct {
	*repomanager.MemoryRepositoryManager
}

func (brokenUsersManager) Users(dbx.DBTX) usersrepo.Repository { return brokenUsersRepo{} }
