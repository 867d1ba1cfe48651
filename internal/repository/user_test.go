package repository

import (
	"context"
	"testing"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
	"github.com/PaulBabatuyi/chatsync/internal/remote/remotetest"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateGetUpdate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepo(remotetest.New())

	_, err := repo.GetUser(ctx, "u1")
	req.ErrorIs(err, remote.ErrNotFound)

	req.NoError(repo.CreateUser(ctx, data.User{ID: "u1", Email: "ada@example.com", DisplayName: "Ada"}))
	req.NoError(repo.UpdateProfile(ctx, "u1", "Ada Lovelace", "https://img/ada.png"))
	req.NoError(repo.SetPresence(ctx, "u1", true))

	u, err := repo.GetUser(ctx, "u1")
	req.NoError(err)
	req.Equal("Ada Lovelace", u.DisplayName)
	req.Equal("https://img/ada.png", u.AvatarURL)
	req.True(u.IsOnline)
	req.False(u.LastSeen.IsZero())

	req.ErrorIs(repo.SetPresence(ctx, "missing", true), remote.ErrNotFound)
}

func TestUserRepo_SearchUsersByPrefix(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepo(remotetest.New())

	for _, u := range []data.User{
		{ID: "u1", DisplayName: "Alice"},
		{ID: "u2", DisplayName: "Albert"},
		{ID: "u3", DisplayName: "Bob"},
		{ID: "u4", DisplayName: "alan"},
	} {
		req.NoError(repo.CreateUser(ctx, u))
	}

	found, err := repo.SearchUsers(ctx, " Al ")
	req.NoError(err)
	req.Equal([]string{"Albert", "Alice"}, names(found))

	found, err = repo.SearchUsers(ctx, "Zed")
	req.NoError(err)
	req.Empty(found)
}

func TestUserRepo_ObserveUser(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	docs := remotetest.New()
	repo := NewUserRepo(docs)

	values, done := observe(ctx, func(ctx context.Context, fn func(*data.User) error) error {
		return repo.ObserveUser(ctx, "u1", fn)
	})
	req.Nil(receive(t, values))

	req.NoError(repo.CreateUser(ctx, data.User{ID: "u1", DisplayName: "Ada"}))
	u := receive(t, values)
	req.NotNil(u)
	req.False(u.IsOnline)

	req.NoError(repo.SetPresence(ctx, "u1", true))
	req.True(receive(t, values).IsOnline)

	// other users do not wake the subscription
	req.NoError(repo.CreateUser(ctx, data.User{ID: "u2", DisplayName: "Bob"}))
	select {
	case v := <-values:
		t.Fatalf("unexpected emission %+v", v)
	default:
	}

	cancel()
	req.ErrorIs(receive(t, done), context.Canceled)
	req.Zero(docs.Active())
}

func names(users []data.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.DisplayName)
	}
	return out
}
