package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/live"
	"github.com/PaulBabatuyi/chatsync/internal/normalize"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

// searchLimit caps the results of a user search.
const searchLimit = 20

// UserRepo implements UserRepository on the users collection.
type UserRepo struct {
	docs remote.Documents
}

// NewUserRepo returns a UserRepo.
func NewUserRepo(docs remote.Documents) *UserRepo {
	return &UserRepo{docs: docs}
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (*data.User, error) {
	var u data.User
	if err := r.docs.Get(ctx, data.UsersCollection, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) CreateUser(ctx context.Context, user data.User) error {
	return r.docs.Set(ctx, data.UsersCollection, user.ID, user)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error {
	return r.docs.Update(ctx, data.UsersCollection, id, map[string]any{
		"displayName": displayName,
		"avatarUrl":   avatarURL,
	})
}

func (r *UserRepo) SetPresence(ctx context.Context, id string, online bool) error {
	return r.docs.Update(ctx, data.UsersCollection, id, map[string]any{
		"isOnline": online,
		"lastSeen": time.Now(),
	})
}

// SearchUsers returns users whose display name starts with prefix. The
// match is case-sensitive, as range queries on the backend are.
func (r *UserRepo) SearchUsers(ctx context.Context, prefix string) ([]data.User, error) {
	q := remote.Collection(data.UsersCollection).
		WherePrefix("displayName", normalize.Prefix(prefix)).
		OrderBy("displayName", false).
		Limit(searchLimit)

	users := []data.User{}
	if err := r.docs.Find(ctx, q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) ObserveUser(ctx context.Context, id string, fn func(*data.User) error) error {
	q := remote.Collection(data.UsersCollection).Where("_id", id)
	sub := live.New(
		func(ctx context.Context, l remote.Listener) (remote.Registration, error) {
			return r.docs.Listen(ctx, q, l)
		},
		func(ctx context.Context) (*data.User, error) {
			u, err := r.GetUser(ctx, id)
			if errors.Is(err, remote.ErrNotFound) {
				return nil, nil
			}
			return u, err
		},
	)
	return sub.Run(ctx, fn)
}
