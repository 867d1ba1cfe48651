package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/auth"
	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/live"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

// Authenticator is the auth service API; *auth.Service implements it.
type Authenticator interface {
	SignUp(ctx context.Context, email, password, displayName string) (*auth.Session, error)
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut()
	UpdateProfile(ctx context.Context, displayName, avatarURL string) error
	CurrentSession() *auth.Session
	OnStateChange(fn auth.StateListener) remote.Registration
}

// AuthRepo implements AuthRepository on the auth service and the users
// collection.
type AuthRepo struct {
	auth  Authenticator
	users UserRepository
	log   *slog.Logger
}

// NewAuthRepo returns an AuthRepo.
func NewAuthRepo(a Authenticator, users UserRepository, log *slog.Logger) *AuthRepo {
	return &AuthRepo{auth: a, users: users, log: log}
}

func (r *AuthRepo) Login(ctx context.Context, email, password string) (*data.User, error) {
	session, err := r.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return r.profile(ctx, session)
}

// Register creates the account and its user document.
func (r *AuthRepo) Register(ctx context.Context, email, password, displayName string) (*data.User, error) {
	session, err := r.auth.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}

	user := userOf(session)
	if err := r.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout marks the user offline and signs out. A failed presence update
// does not prevent signing out.
func (r *AuthRepo) Logout(ctx context.Context) error {
	if id := r.CurrentUserID(); id != "" {
		if err := r.users.SetPresence(ctx, id, false); err != nil {
			r.log.Debug("presence update failed", "user_id", id, "error", err)
		}
	}
	r.auth.SignOut()
	return nil
}

func (r *AuthRepo) UpdateProfile(ctx context.Context, displayName, avatarURL string) error {
	if err := r.auth.UpdateProfile(ctx, displayName, avatarURL); err != nil {
		return err
	}
	return r.users.UpdateProfile(ctx, r.CurrentUserID(), displayName, avatarURL)
}

func (r *AuthRepo) CurrentUserID() string {
	if s := r.auth.CurrentSession(); s != nil {
		return s.UserID
	}
	return ""
}

func (r *AuthRepo) ObserveCurrentUser(ctx context.Context, fn func(*data.User) error) error {
	sub := live.New(
		func(_ context.Context, l remote.Listener) (remote.Registration, error) {
			return r.auth.OnStateChange(func(*auth.Session) { l.OnChange() }), nil
		},
		r.currentUser,
	)
	return sub.Run(ctx, fn)
}

// currentUser marks the signed-in user online and returns its profile,
// or nil when signed out.
func (r *AuthRepo) currentUser(ctx context.Context) (*data.User, error) {
	session := r.auth.CurrentSession()
	if session == nil {
		return nil, nil
	}

	if err := r.users.SetPresence(ctx, session.UserID, true); err != nil {
		r.log.Debug("presence update failed", "user_id", session.UserID, "error", err)
	}

	u, err := r.profile(ctx, session)
	if err != nil {
		return nil, err
	}
	u.IsOnline = true
	return u, nil
}

// profile loads the user document of session, falling back to the
// session's own data while the document does not exist.
func (r *AuthRepo) profile(ctx context.Context, session *auth.Session) (*data.User, error) {
	u, err := r.users.GetUser(ctx, session.UserID)
	if errors.Is(err, remote.ErrNotFound) {
		fallback := userOf(session)
		return &fallback, nil
	}
	return u, err
}

func userOf(s *auth.Session) data.User {
	return data.User{
		ID:          s.UserID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		AvatarURL:   s.AvatarURL,
		IsOnline:    true,
		LastSeen:    time.Now(),
	}
}
