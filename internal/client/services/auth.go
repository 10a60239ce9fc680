// Package services contains the application services behind the CLI screens:
// authentication (sign-in, sign-up, sign-out) and analytics retrieval with an
// offline snapshot fallback.
package services

import (
	"context"
	"errors"
	"fmt"

	"storepulse/internal/client/api"
	"storepulse/internal/client/models"
	"storepulse/internal/client/session"
	"storepulse/internal/logging"
)

// AuthService defines the authentication operations for the CLI.
//
// Contract:
//   - Register: create an account; the session is not touched.
//   - Login: exchange credentials for {user, token} and populate the session
//     store in one step.
//   - Logout: best-effort server-side token invalidation, then always clear
//     the session and the local snapshot cache.
//   - Ping: backend reachability probe.
type AuthService interface {
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// SnapshotCleaner is the slice of the local store Logout needs.
type SnapshotCleaner interface {
	Clear(ctx context.Context) error
}

type authService struct {
	api       api.Client
	sessions  *session.Store
	snapshots SnapshotCleaner
	log       logging.Logger
}

// NewAuthService binds the API client, the session store, and the snapshot
// cache (may be nil when no local db is available).
func NewAuthService(client api.Client, sessions *session.Store, snapshots SnapshotCleaner, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: client, sessions: sessions, snapshots: snapshots, log: log}
}

func (a *authService) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*models.User, error) {
	user, err := a.api.Register(ctx, name, email, password, passwordConfirmation)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "account registered", "email", email)
	return user, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	a.sessions.Login(user, token)
	a.log.Info(ctx, "signed in", "email", email)
	return user, nil
}

// Logout clears local state even when the server call fails: an unreachable
// backend or an already-dead token must never trap the user in a session.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		// A 401 here means the pipeline already cleared the session; both
		// cases end in the same local cleanup below.
		if !errors.Is(err, api.ErrUnauthorized) {
			a.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}
	a.sessions.Logout()
	if a.snapshots != nil {
		if err := a.snapshots.Clear(ctx); err != nil {
			a.log.Warn(ctx, "clearing snapshot cache failed", "error", err)
		}
	}
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
