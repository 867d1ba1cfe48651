// Package usecase validates user actions before handing them to the
// repositories.
package usecase

import (
	"context"
	"strings"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/normalize"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
)

type Login struct {
	auth repository.AuthRepository
}

func NewLogin(auth repository.AuthRepository) *Login {
	return &Login{auth: auth}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*data.User, error) {
	email = normalize.Email(email)
	if err := check(loginRequest{Email: email, Password: password}); err != nil {
		return nil, err
	}
	return uc.auth.Login(ctx, email, password)
}

type Register struct {
	auth repository.AuthRepository
}

func NewRegister(auth repository.AuthRepository) *Register {
	return &Register{auth: auth}
}

func (uc *Register) Execute(ctx context.Context, email, password, displayName string) (*data.User, error) {
	email = normalize.Email(email)
	displayName = strings.TrimSpace(displayName)
	req := registerRequest{Email: email, Password: password, DisplayName: displayName}
	if err := check(req); err != nil {
		return nil, err
	}
	return uc.auth.Register(ctx, email, password, displayName)
}

type Logout struct {
	auth repository.AuthRepository
}

func NewLogout(auth repository.AuthRepository) *Logout {
	return &Logout{auth: auth}
}

func (uc *Logout) Execute(ctx context.Context) error {
	return uc.auth.Logout(ctx)
}

type UpdateProfile struct {
	auth repository.AuthRepository
}

func NewUpdateProfile(auth repository.AuthRepository) *UpdateProfile {
	return &UpdateProfile{auth: auth}
}

func (uc *UpdateProfile) Execute(ctx context.Context, displayName, avatarURL string) error {
	displayName = strings.TrimSpace(displayName)
	if err := check(profileRequest{DisplayName: displayName}); err != nil {
		return err
	}
	return uc.auth.UpdateProfile(ctx, displayName, strings.TrimSpace(avatarURL))
}

// ObserveSession streams the signed-in user, nil while signed out.
type ObserveSession struct {
	auth repository.AuthRepository
}

func NewObserveSession(auth repository.AuthRepository) *ObserveSession {
	return &ObserveSession{auth: auth}
}

func (uc *ObserveSession) Execute(ctx context.Context, fn func(*data.User) error) error {
	return uc.auth.ObserveCurrentUser(ctx, fn)
}
