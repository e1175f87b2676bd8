// Package services contains the application services of the scanboard
// client. This file defines the authentication service: the process-wide
// session, login/logout transitions and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/dmitrijs2005/scanboard/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the access token to attach to the next request.
// An empty string means "no credentials".
type TokenSource interface {
	AccessToken() string
}

// AuthService owns the session.
//
// Contract:
//   - Login: exchange credentials for a token pair and save it.
//   - SaveTokens: persist the pair, then make it the current session.
//   - Logout: forget the session locally (no server call).
//   - AccessToken/IsAuthenticated/Tokens/Username/ExpiresAt: read the
//     in-memory session; they never touch storage.
//   - Ping: check server liveness.
type AuthService interface {
	TokenSource
	Login(ctx context.Context, email, password string) error
	SaveTokens(ctx context.Context, pair models.TokenPair, username string) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	Tokens() *models.TokenPair
	Username() string
	ExpiresAt() time.Time
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  tokens.Store
	log    logging.Logger

	mu       sync.RWMutex
	session  *models.TokenPair
	username string
}

// NewAuthService builds the service and hydrates the session from store, so
// a saved session is active before the first request is made.
func NewAuthService(ctx context.Context, c client.Client, store tokens.Store, log logging.Logger) (AuthService, error) {
	if log == nil {
		log = logging.Nop()
	}
	a := &authService{client: c, store: store, log: log}

	pair, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if pair == nil {
		return a, nil
	}

	username, err := store.Username(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	a.session = pair
	a.username = username
	log.Debug(ctx, "session restored", "user", username)
	return a, nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return common.ErrMissingCredentials
	}

	var pair models.TokenPair
	err := a.client.Post(ctx, "", "/auth/login", nil, models.Credentials{Email: email, Password: password}, &pair)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !pair.Complete() {
		return fmt.Errorf("login: server response: %w", common.ErrIncompletePair)
	}

	if err := a.SaveTokens(ctx, pair, email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", email)
	return nil
}

// SaveTokens persists first; on a storage failure the current session is
// left untouched.
func (a *authService) SaveTokens(ctx context.Context, pair models.TokenPair, username string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Save(ctx, pair, username); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	p := pair
	a.session = &p
	a.username = username
	return nil
}

// Logout always ends the in-memory session; a storage error is still
// returned.
func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	a.username = ""
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) AccessToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.AccessToken
}

func (a *authService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session != nil
}

// Tokens returns a copy of the current pair, or nil.
func (a *authService) Tokens() *models.TokenPair {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil
	}
	p := *a.session
	return &p
}

func (a *authService) Username() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.username
}

// ExpiresAt reads the exp claim of the access token without verifying the
// signature. Zero when there is no session or the token carries no expiry.
func (a *authService) ExpiresAt() time.Time {
	return TokenExpiry(a.AccessToken())
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Get(ctx, a.AccessToken(), healthPath, nil, nil)
}

// TokenExpiry decodes the exp claim of a JWT. Anything that is not a JWT
// with an exp claim yields the zero time.
func TokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// IsUnauthorized reports whether err means the session is no longer
// accepted by the server.
func IsUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}
