// Package repository adapts the remote gateway into per-entity
// repositories. Observe methods block, calling fn with a full snapshot on
// every change until ctx is done or the backend fails; one-shot methods
// return backend errors unmodified.
package repository

import (
	"context"

	"github.com/PaulBabatuyi/chatsync/internal/data"
)

//go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks github.com/PaulBabatuyi/chatsync/internal/repository AuthRepository,UserRepository,ChatRepository,MessageRepository

// AuthRepository signs the current user in and out and projects the auth
// state into a current-user stream.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*data.User, error)
	Register(ctx context.Context, email, password, displayName string) (*data.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, displayName, avatarURL string) error
	// CurrentUserID is empty when signed out.
	CurrentUserID() string
	// ObserveCurrentUser emits the signed-in user, marked online, on every
	// auth-state change, and nil while signed out.
	ObserveCurrentUser(ctx context.Context, fn func(*data.User) error) error
}

// UserRepository reads and writes user profiles.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*data.User, error)
	CreateUser(ctx context.Context, user data.User) error
	UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error
	SetPresence(ctx context.Context, id string, online bool) error
	SearchUsers(ctx context.Context, prefix string) ([]data.User, error)
	// ObserveUser emits the user document, nil while it does not exist.
	ObserveUser(ctx context.Context, id string, fn func(*data.User) error) error
}

// ChatRepository reads and writes chats.
type ChatRepository interface {
	// ObserveChats emits the user's chats, most recent first, each joined
	// with the participants' current profiles.
	ObserveChats(ctx context.Context, userID string, fn func([]data.Chat) error) error
	GetChat(ctx context.Context, id string) (*data.Chat, error)
	// CreateChat returns the existing chat with exactly these participants
	// or creates one.
	CreateChat(ctx context.Context, participants []string) (*data.Chat, error)
	UpdateLastMessage(ctx context.Context, msg data.Message) error
}

// MessageRepository reads and writes the messages of a chat.
type MessageRepository interface {
	// ObserveMessages emits the chat's messages, oldest first.
	ObserveMessages(ctx context.Context, chatID string, fn func([]data.Message) error) error
	// SendMessage stores msg as sent and updates the chat's last-message
	// summary.
	SendMessage(ctx context.Context, msg data.Message) (*data.Message, error)
	UpdateMessageStatus(ctx context.Context, chatID, id string, status data.MessageStatus) error
	DeleteMessage(ctx context.Context, chatID, id string) error
}
