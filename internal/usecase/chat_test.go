package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChats := mocks.NewMockChatRepository(ctrl)
	uc := NewCreateChat(mockChats)

	t.Run("should reject an empty participant list", func(t *testing.T) {
		mockChats.EXPECT().CreateChat(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Execute(context.Background(), nil)

		requireValidation(t, err, "Participants", "Participants needs at least 1 entry")
	})

	t.Run("should reject blank participant ids", func(t *testing.T) {
		mockChats.EXPECT().CreateChat(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Execute(context.Background(), []string{"me", " "})

		req := require.New(t)
		req.ErrorIs(err, ErrValidation)
		req.Equal("Participants cannot contain an empty entry", err.Error())
	})

	t.Run("should delegate valid participants", func(t *testing.T) {
		req := require.New(t)
		mockChats.EXPECT().
			CreateChat(gomock.Any(), []string{"me", "u1"}).
			Return(&data.Chat{ID: "c1", Participants: []string{"me", "u1"}}, nil)

		chat, err := uc.Execute(context.Background(), []string{"me", "u1"})

		req.NoError(err)
		req.Equal("c1", chat.ID)
	})
}

func TestGetChats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChats := mocks.NewMockChatRepository(ctrl)
	uc := NewGetChats(mockChats)

	t.Run("should reject a blank user id", func(t *testing.T) {
		mockChats.EXPECT().ObserveChats(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := uc.Execute(context.Background(), "", func([]data.Chat) error { return nil })

		requireValidation(t, err, "ID", "User id cannot be empty")
	})

	t.Run("should surface stream termination", func(t *testing.T) {
		req := require.New(t)
		boom := errors.New("permission denied")
		mockChats.EXPECT().
			ObserveChats(gomock.Any(), "me", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn func([]data.Chat) error) error {
				if err := fn([]data.Chat{{ID: "c1"}}); err != nil {
					return err
				}
				return boom
			})

		var got [][]data.Chat
		err := uc.Execute(context.Background(), "me", func(chats []data.Chat) error {
			got = append(got, chats)
			return nil
		})

		req.ErrorIs(err, boom)
		req.Len(got, 1)
	})
}

func TestGetChat(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChats := mocks.NewMockChatRepository(ctrl)
	uc := NewGetChat(mockChats)

	_, err := uc.Execute(context.Background(), "")
	requireValidation(t, err, "ID", "Chat id cannot be empty")

	mockChats.EXPECT().GetChat(gomock.Any(), "c1").Return(&data.Chat{ID: "c1"}, nil)
	chat, err := uc.Execute(context.Background(), "c1")
	req.NoError(err)
	req.Equal("c1", chat.ID)
}
