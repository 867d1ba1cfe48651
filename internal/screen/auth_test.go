package screen

import (
	"context"
	"testing"

	"github.com/PaulBabatuyi/chatsync/internal/auth"
	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// expectSession makes the session stream emit u once and then idle. The
// returned channel is closed after the emission.
func expectSession(f *fixture, u *data.User) <-chan struct{} {
	emitted := make(chan struct{})
	f.auth.EXPECT().
		ObserveCurrentUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*data.User) error) error {
			err := fn(u)
			close(emitted)
			if err != nil {
				return err
			}
			<-ctx.Done()
			return ctx.Err()
		})
	return emitted
}

func TestAuthScreen_ObservesSession(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	expectSession(f, &data.User{ID: "u1", DisplayName: "Ada", IsOnline: true})

	s := f.screens.Auth(context.Background())
	defer s.Close()

	st := waitFor(t, s.State(), func(st AuthState) bool { return st.User != nil })
	req.Equal("u1", st.User.ID)
	req.True(st.User.IsOnline)
}

func TestAuthScreen_LoginFlow(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	emitted := expectSession(f, nil)

	s := f.screens.Auth(context.Background())
	defer s.Close()
	<-emitted

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	err := s.Login(context.Background(), "ada@example.com", "")
	req.Error(err)
	st := s.State().Get()
	req.Equal("Password cannot be empty", st.Error)
	req.False(st.IsLoading)

	f.auth.EXPECT().
		Login(gomock.Any(), "ada@example.com", "wrong").
		Return(nil, auth.ErrInvalidCredentials)
	req.ErrorIs(s.Login(context.Background(), "ada@example.com", "wrong"), auth.ErrInvalidCredentials)
	req.Equal(auth.ErrInvalidCredentials.Error(), s.State().Get().Error)

	f.auth.EXPECT().
		Login(gomock.Any(), "ada@example.com", "secret1").
		Return(&data.User{ID: "u1", DisplayName: "Ada"}, nil)
	req.NoError(s.Login(context.Background(), "Ada@example.com", "secret1"))
	st = s.State().Get()
	req.Empty(st.Error)
	req.Equal("u1", st.User.ID)

	f.auth.EXPECT().Logout(gomock.Any()).Return(nil)
	req.NoError(s.Logout(context.Background()))
	req.Nil(s.State().Get().User)
}

func TestAuthScreen_RegisterAndPasswordHint(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	emitted := expectSession(f, nil)

	s := f.screens.Auth(context.Background())
	defer s.Close()
	<-emitted

	s.SetPassword("abc")
	weak := s.State().Get()
	req.False(weak.StrongPassword)

	s.SetPassword("correct horse battery staple 42!")
	strong := s.State().Get()
	req.True(strong.StrongPassword)
	req.Greater(strong.PasswordStrength, weak.PasswordStrength)

	// a weak password is still accepted when it is long enough
	f.auth.EXPECT().
		Register(gomock.Any(), "bob@example.com", "aaaaaa", "Bob").
		Return(&data.User{ID: "u2", DisplayName: "Bob"}, nil)
	req.NoError(s.Register(context.Background(), "bob@example.com", "aaaaaa", "Bob"))
	req.Equal("u2", s.State().Get().User.ID)

	req.Error(s.Register(context.Background(), "bob@example.com", "12345", "Bob"))
	req.Equal("Password must be at least 6 characters", s.State().Get().Error)
	s.DismissError()
	req.Empty(s.State().Get().Error)
}
