package screen

import (
	"context"
	"log/slog"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/usecase"
)

// UseCases is every user action the screens can run.
type UseCases struct {
	Login          *usecase.Login
	Register       *usecase.Register
	Logout         *usecase.Logout
	UpdateProfile  *usecase.UpdateProfile
	ObserveSession *usecase.ObserveSession
	CreateChat     *usecase.CreateChat
	GetChat        *usecase.GetChat
	GetChats       *usecase.GetChats
	SendMessage    *usecase.SendMessage
	GetMessages    *usecase.GetMessages
	SearchUsers    *usecase.SearchUsers
	ObserveUser    *usecase.ObserveUser
}

// Screens opens screens. Every screen started with a context stops its
// subscriptions when that context is done or when it is closed.
type Screens struct {
	uc  *UseCases
	log *slog.Logger
}

func NewScreens(uc *UseCases, log *slog.Logger) *Screens {
	return &Screens{uc: uc, log: log}
}

func (f *Screens) Auth(ctx context.Context) *AuthScreen {
	return newAuthScreen(ctx, f.uc, f.log)
}

func (f *Screens) ChatList(ctx context.Context, userID string) *ChatListScreen {
	return newChatListScreen(ctx, f.uc, userID, f.log)
}

func (f *Screens) Chat(ctx context.Context, chatID string, me data.User) *ChatScreen {
	return newChatScreen(ctx, f.uc, chatID, me, f.log)
}

func (f *Screens) NewChat(userID string) *NewChatScreen {
	return newNewChatScreen(f.uc, userID)
}
