package usecase

import (
	"context"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
)

type CreateChat struct {
	chats repository.ChatRepository
}

func NewCreateChat(chats repository.ChatRepository) *CreateChat {
	return &CreateChat{chats: chats}
}

func (uc *CreateChat) Execute(ctx context.Context, participants []string) (*data.Chat, error) {
	if err := check(createChatRequest{Participants: participants}); err != nil {
		return nil, err
	}
	return uc.chats.CreateChat(ctx, participants)
}

// GetChats streams the user's chats, most recent first.
type GetChats struct {
	chats repository.ChatRepository
}

func NewGetChats(chats repository.ChatRepository) *GetChats {
	return &GetChats{chats: chats}
}

func (uc *GetChats) Execute(ctx context.Context, userID string, fn func([]data.Chat) error) error {
	if err := requireID("User id", userID); err != nil {
		return err
	}
	return uc.chats.ObserveChats(ctx, userID, fn)
}

type GetChat struct {
	chats repository.ChatRepository
}

func NewGetChat(chats repository.ChatRepository) *GetChat {
	return &GetChat{chats: chats}
}

func (uc *GetChat) Execute(ctx context.Context, id string) (*data.Chat, error) {
	if err := requireID("Chat id", id); err != nil {
		return nil, err
	}
	return uc.chats.GetChat(ctx, id)
}
