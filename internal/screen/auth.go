package screen

import (
	"context"
	"log/slog"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// StrongPasswordBits is the entropy above which a password is reported strong.
const StrongPasswordBits = 50

// AuthState is the sign-in state. PasswordStrength is the estimated
// entropy, in bits, of the password being typed; it is a hint only and
// never blocks registration.
type AuthState struct {
	User             *data.User
	IsLoading        bool
	Error            string
	PasswordStrength float64
	StrongPassword   bool
}

// AuthScreen signs the user in, up and out, and tracks the current user.
type AuthScreen struct {
	state *State[AuthState]
	scope *scope
	uc    *UseCases
	log   *slog.Logger
}

func newAuthScreen(ctx context.Context, uc *UseCases, log *slog.Logger) *AuthScreen {
	s := &AuthScreen{
		state: NewState(AuthState{}),
		scope: newScope(ctx),
		uc:    uc,
		log:   log,
	}
	s.scope.launch(s.observe)
	return s
}

func (s *AuthScreen) State() *State[AuthState] { return s.state }

func (s *AuthScreen) observe(ctx context.Context) {
	err := s.uc.ObserveSession.Execute(ctx, func(u *data.User) error {
		s.state.Update(func(st AuthState) AuthState {
			st.User = u
			return st
		})
		return nil
	})
	if msg := message(err); msg != "" {
		s.log.Error("session stream ended", "error", err)
		s.state.Update(func(st AuthState) AuthState {
			st.Error = msg
			return st
		})
	}
}

func (s *AuthScreen) Login(ctx context.Context, email, password string) error {
	s.begin()
	u, err := s.uc.Login.Execute(ctx, email, password)
	s.finish(u, err)
	return err
}

func (s *AuthScreen) Register(ctx context.Context, email, password, displayName string) error {
	s.begin()
	u, err := s.uc.Register.Execute(ctx, email, password, displayName)
	s.finish(u, err)
	return err
}

func (s *AuthScreen) Logout(ctx context.Context) error {
	s.begin()
	err := s.uc.Logout.Execute(ctx)
	s.state.Update(func(st AuthState) AuthState {
		st.IsLoading = false
		if err != nil {
			st.Error = err.Error()
		} else {
			st.User = nil
		}
		return st
	})
	return err
}

// SetPassword updates the strength hint for the password being typed.
func (s *AuthScreen) SetPassword(password string) {
	bits := passwordvalidator.GetEntropy(password)
	s.state.Update(func(st AuthState) AuthState {
		st.PasswordStrength = bits
		st.StrongPassword = bits >= StrongPasswordBits
		return st
	})
}

func (s *AuthScreen) DismissError() {
	s.state.Update(func(st AuthState) AuthState {
		st.Error = ""
		return st
	})
}

// Close stops the session stream.
func (s *AuthScreen) Close() { s.scope.close() }

func (s *AuthScreen) begin() {
	s.state.Update(func(st AuthState) AuthState {
		st.IsLoading = true
		st.Error = ""
		return st
	})
}

func (s *AuthScreen) finish(u *data.User, err error) {
	s.state.Update(func(st AuthState) AuthState {
		st.IsLoading = false
		if err != nil {
			st.Error = err.Error()
			return st
		}
		st.User = u
		return st
	})
}
