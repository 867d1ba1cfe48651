package usecase

import (
	"context"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
)

type SendMessage struct {
	messages repository.MessageRepository
}

func NewSendMessage(messages repository.MessageRepository) *SendMessage {
	return &SendMessage{messages: messages}
}

func (uc *SendMessage) Execute(ctx context.Context, msg data.Message) (*data.Message, error) {
	req := messageRequest{ChatID: msg.ChatID, SenderID: msg.SenderID, Content: msg.Content}
	if err := check(req); err != nil {
		return nil, err
	}
	return uc.messages.SendMessage(ctx, msg)
}

// GetMessages streams a chat's messages, oldest first.
type GetMessages struct {
	messages repository.MessageRepository
}

func NewGetMessages(messages repository.MessageRepository) *GetMessages {
	return &GetMessages{messages: messages}
}

func (uc *GetMessages) Execute(ctx context.Context, chatID string, fn func([]data.Message) error) error {
	if err := requireID("Chat id", chatID); err != nil {
		return err
	}
	return uc.messages.ObserveMessages(ctx, chatID, fn)
}
