// Package auth is the authentication service of the backend: credential
// accounts, session tokens and auth-state listeners.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/normalize"
	"github.com/PaulBabatuyi/chatsync/internal/ratelimit"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no signed-in user")
	ErrRateLimited        = errors.New("too many attempts, try again later")
)

// AccountStore persists credential accounts; *data.AccountsStore implements it.
type AccountStore interface {
	CreateAccount(ctx context.Context, email, passwordHash, displayName string) (*data.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*data.Account, error)
	GetAccountByID(ctx context.Context, id string) (*data.Account, error)
	UpdateAccountProfile(ctx context.Context, id, displayName, avatarURL string) error
}

// Session is a signed-in user as seen by the auth service.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string
	Token       string
	ExpiresAt   time.Time
}

// Service signs users in and out and reports auth-state changes. It holds
// the one current session of this client process.
type Service struct {
	accounts AccountStore
	tokens   *JWTManager
	limiter  *ratelimit.LimiterStore
	log      *slog.Logger

	mu        sync.RWMutex
	current   *Session
	listeners *listenerSet
}

// NewService returns an auth service. limiter may be nil to disable
// attempt limiting.
func NewService(accounts AccountStore, tokens *JWTManager, limiter *ratelimit.LimiterStore, log *slog.Logger) *Service {
	return &Service{
		accounts:  accounts,
		tokens:    tokens,
		limiter:   limiter,
		log:       log,
		listeners: newListenerSet(),
	}
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	email = normalize.Email(email)
	if err := s.allow(email); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, email, hashed, displayName)
	if err != nil {
		return nil, err
	}
	return s.start(account)
}

// SignIn checks credentials and signs the account in.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalize.Email(email)
	if err := s.allow(email); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, data.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.start(account)
}

// Restore resumes a session from a previously issued token.
func (s *Service) Restore(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	account, err := s.accounts.GetAccountByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	session := sessionOf(account, token, claims.ExpiresAt.Time)
	s.set(session)
	return session, nil
}

// SignOut ends the current session. Signing out without a session is a no-op.
func (s *Service) SignOut() {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if had {
		s.log.Info("signed out")
		s.listeners.notify(nil)
	}
}

// UpdateProfile changes the display name and avatar of the signed-in account.
func (s *Service) UpdateProfile(ctx context.Context, displayName, avatarURL string) error {
	current := s.CurrentSession()
	if current == nil {
		return ErrNoSession
	}
	if err := s.accounts.UpdateAccountProfile(ctx, current.UserID, displayName, avatarURL); err != nil {
		return err
	}

	updated := *current
	updated.DisplayName = displayName
	updated.AvatarURL = avatarURL
	s.set(&updated)
	return nil
}

// CurrentSession returns a copy of the current session, or nil.
func (s *Service) CurrentSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// OnStateChange registers fn for auth-state changes. fn is called right
// away with the current session and then after every sign-in, sign-out and
// profile change.
func (s *Service) OnStateChange(fn StateListener) remote.Registration {
	reg := s.listeners.add(fn)
	fn(s.CurrentSession())
	return reg
}

func (s *Service) allow(email string) error {
	if s.limiter != nil && !s.limiter.Allow("email:"+email) {
		s.log.Debug("auth attempt rate limited", "email", email)
		return ErrRateLimited
	}
	return nil
}

func (s *Service) start(account *data.Account) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	session := sessionOf(account, token, expiresAt)
	s.set(session)
	s.log.Info("signed in", "user_id", account.ID)
	return session, nil
}

func (s *Service) set(session *Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	c := *session
	s.listeners.notify(&c)
}

func sessionOf(account *data.Account, token string, expiresAt time.Time) *Session {
	return &Session{
		UserID:      account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		Token:       token,
		ExpiresAt:   expiresAt,
	}
}
