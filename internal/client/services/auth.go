package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/gateway"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/session"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

// SessionStore persists the session between runs.
type SessionStore interface {
	Load(ctx context.Context) (session.Credentials, error)
	Save(ctx context.Context, c session.Credentials) error
	SetUsername(ctx context.Context, username string) error
	Expire(ctx context.Context) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Login and Register are public calls: a refused login is reported with the
// server's message and never treated as an expired session.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Credentials, error)
	Register(ctx context.Context, username string, password []byte) error
	UpdateProfile(ctx context.Context, username string, password []byte) (string, error)
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	Restore(ctx context.Context) (session.Credentials, error)
	Current() session.Credentials
}

type authService struct {
	api      API
	sessions SessionStore
	logger   logging.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current session.Credentials
}

func NewAuthService(api API, sessions SessionStore, logger logging.Logger) AuthService {
	return &authService{
		api:      api,
		sessions: sessions,
		logger:   logger.With("component", "auth"),
		now:      time.Now,
	}
}

func (a *authService) Current() session.Credentials {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *authService) set(c session.Credentials) {
	a.mu.Lock()
	a.current = c
	a.mu.Unlock()
}

func checkAuthFields(username string, password []byte) error {
	if strings.TrimSpace(username) == "" || len(password) == 0 {
		return invalid("username", "please fill in all fields")
	}
	return nil
}

// refused turns a non-2xx answer into an error carrying the server's text,
// or fallback when the body is empty.
func refused(resp *gateway.Response, fallback string) error {
	err := resp.Err()
	var appErr *gateway.ApplicationError
	if errors.As(err, &appErr) && appErr.Message == "" {
		appErr.Message = fallback
	}
	return err
}

// Login authenticates and persists the returned token and user name.
func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Credentials, error) {
	if err := checkAuthFields(username, password); err != nil {
		return session.Credentials{}, err
	}

	resp, err := a.api.Public(ctx, http.MethodPost, "/auth/login",
		models.AuthRequest{Username: username, Password: string(password)})
	if err != nil {
		return session.Credentials{}, fmt.Errorf("login error: %w", err)
	}
	if !resp.OK() {
		return session.Credentials{}, refused(resp, "authentication failed")
	}

	var out models.AuthResponse
	if err := resp.Decode(&out); err != nil {
		return session.Credentials{}, err
	}
	if out.Token == "" {
		return session.Credentials{}, errors.New("login error: server returned no token")
	}

	c := session.Credentials{Token: out.Token, Username: out.Username}
	if c.Username == "" {
		c.Username = username
	}
	if err := a.sessions.Save(ctx, c); err != nil {
		return session.Credentials{}, fmt.Errorf("session saving error: %w", err)
	}
	a.set(c)
	a.logger.Info(ctx, "logged in", "user", c.Username)
	return c, nil
}

// Register creates an account. It does not log the user in.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if err := checkAuthFields(username, password); err != nil {
		return err
	}

	resp, err := a.api.Public(ctx, http.MethodPost, "/auth/register",
		models.AuthRequest{Username: username, Password: string(password)})
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	if !resp.OK() {
		return refused(resp, "registration failed")
	}
	return nil
}

// UpdateProfile renames the current user and, when password is not empty,
// changes the password. It returns the user name the server settled on.
func (a *authService) UpdateProfile(ctx context.Context, username string, password []byte) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", invalid("username", "username cannot be empty")
	}

	resp, err := a.api.Do(ctx, http.MethodPost, "/auth/profile",
		models.ProfileRequest{Username: username, Password: string(password)}, nil)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", refused(resp, "profile update failed")
	}

	var out models.ProfileResponse
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	if out.Username == "" {
		out.Username = username
	}

	if err := a.sessions.SetUsername(ctx, out.Username); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	a.mu.Lock()
	a.current.Username = out.Username
	a.mu.Unlock()
	return out.Username, nil
}

// Logout forgets the session, locally and on disk.
func (a *authService) Logout(ctx context.Context) error {
	a.set(session.Credentials{})
	return a.sessions.Clear(ctx)
}

// Expire drops the token after the server refused it. The user name is kept
// so the login prompt can offer it.
func (a *authService) Expire(ctx context.Context) error {
	a.mu.Lock()
	a.current.Token = ""
	a.mu.Unlock()
	return a.sessions.Expire(ctx)
}

// Restore picks up the session of a previous run. A token whose exp claim
// has passed is discarded without asking the server.
func (a *authService) Restore(ctx context.Context) (session.Credentials, error) {
	c, err := a.sessions.Load(ctx)
	if err != nil {
		return session.Credentials{}, err
	}
	if c.IsZero() {
		return session.Credentials{}, nil
	}
	if c.Expired(a.now()) {
		a.logger.Info(ctx, "stored session expired", "user", c.Username)
		if err := a.sessions.Expire(ctx); err != nil {
			return session.Credentials{}, err
		}
		return session.Credentials{}, nil
	}
	a.set(c)
	return c, nil
}
