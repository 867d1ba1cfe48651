package usecase

import (
	"context"
	"strings"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
	"github.com/samber/lo"
)

// SearchUsers finds other users by display-name prefix.
type SearchUsers struct {
	users repository.UserRepository
	auth  repository.AuthRepository
}

func NewSearchUsers(users repository.UserRepository, auth repository.AuthRepository) *SearchUsers {
	return &SearchUsers{users: users, auth: auth}
}

// Execute returns no users for a blank prefix and never the current user.
func (uc *SearchUsers) Execute(ctx context.Context, prefix string) ([]data.User, error) {
	if strings.TrimSpace(prefix) == "" {
		return []data.User{}, nil
	}

	users, err := uc.users.SearchUsers(ctx, prefix)
	if err != nil {
		return nil, err
	}
	me := uc.auth.CurrentUserID()
	return lo.Filter(users, func(u data.User, _ int) bool { return u.ID != me }), nil
}

// ObserveUser streams one user's profile and presence.
type ObserveUser struct {
	users repository.UserRepository
}

func NewObserveUser(users repository.UserRepository) *ObserveUser {
	return &ObserveUser{users: users}
}

func (uc *ObserveUser) Execute(ctx context.Context, id string, fn func(*data.User) error) error {
	if err := requireID("User id", id); err != nil {
		return err
	}
	return uc.users.ObserveUser(ctx, id, fn)
}
