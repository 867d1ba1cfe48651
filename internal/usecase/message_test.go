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

func TestSendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMessages := mocks.NewMockMessageRepository(ctrl)
	uc := NewSendMessage(mockMessages)

	t.Run("should reject blank content", func(t *testing.T) {
		mockMessages.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Execute(context.Background(), data.Message{ChatID: "c1", SenderID: "me", Content: " \n\t"})

		requireValidation(t, err, "Content", "Message cannot be empty")
	})

	t.Run("should reject a missing chat or sender", func(t *testing.T) {
		mockMessages.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Execute(context.Background(), data.Message{SenderID: "me", Content: "hi"})
		requireValidation(t, err, "ChatID", "Chat id cannot be empty")

		_, err = uc.Execute(context.Background(), data.Message{ChatID: "c1", Content: "hi"})
		requireValidation(t, err, "SenderID", "Sender id cannot be empty")
	})

	t.Run("should delegate valid messages", func(t *testing.T) {
		req := require.New(t)
		msg := data.Message{ChatID: "c1", SenderID: "me", ReceiverID: "u1", Content: "hi"}
		mockMessages.EXPECT().
			SendMessage(gomock.Any(), msg).
			Return(&data.Message{ID: "m1", ChatID: "c1", Content: "hi", Status: data.MessageStatusSent}, nil)

		sent, err := uc.Execute(context.Background(), msg)

		req.NoError(err)
		req.Equal("m1", sent.ID)
	})

	t.Run("should pass backend errors through", func(t *testing.T) {
		req := require.New(t)
		boom := errors.New("network unreachable")
		mockMessages.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := uc.Execute(context.Background(), data.Message{ChatID: "c1", SenderID: "me", Content: "hi"})

		req.Equal(boom, err)
	})
}

func TestGetMessages(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMessages := mocks.NewMockMessageRepository(ctrl)
	uc := NewGetMessages(mockMessages)

	mockMessages.EXPECT().ObserveMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	err := uc.Execute(context.Background(), " ", func([]data.Message) error { return nil })
	requireValidation(t, err, "ID", "Chat id cannot be empty")

	mockMessages.EXPECT().ObserveMessages(gomock.Any(), "c1", gomock.Any()).Return(context.Canceled)
	err = uc.Execute(context.Background(), "c1", func([]data.Message) error { return nil })
	req.ErrorIs(err, context.Canceled)
}
