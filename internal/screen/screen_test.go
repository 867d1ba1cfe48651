package screen

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/mocks"
	"github.com/PaulBabatuyi/chatsync/internal/remote/remotetest"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
	"github.com/PaulBabatuyi/chatsync/internal/usecase"
	"github.com/mama165/sdk-go/logs"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	docs     *remotetest.Docs
	users    *repository.UserRepo
	chats    *repository.ChatRepo
	messages *repository.MessageRepo
	auth     *mocks.MockAuthRepository
	screens  *Screens
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)

	docs := remotetest.New()
	users := repository.NewUserRepo(docs)
	chats := repository.NewChatRepo(docs, users, repository.DefaultJoinConcurrency, log)
	messages := repository.NewMessageRepo(docs, chats)
	auth := mocks.NewMockAuthRepository(ctrl)

	uc := &UseCases{
		Login:          usecase.NewLogin(auth),
		Register:       usecase.NewRegister(auth),
		Logout:         usecase.NewLogout(auth),
		UpdateProfile:  usecase.NewUpdateProfile(auth),
		ObserveSession: usecase.NewObserveSession(auth),
		CreateChat:     usecase.NewCreateChat(chats),
		GetChat:        usecase.NewGetChat(chats),
		GetChats:       usecase.NewGetChats(chats),
		SendMessage:    usecase.NewSendMessage(messages),
		GetMessages:    usecase.NewGetMessages(messages),
		SearchUsers:    usecase.NewSearchUsers(users, auth),
		ObserveUser:    usecase.NewObserveUser(users),
	}
	return &fixture{
		docs:     docs,
		users:    users,
		chats:    chats,
		messages: messages,
		auth:     auth,
		screens:  NewScreens(uc, log),
	}
}

func (f *fixture) seedUsers(t *testing.T, users ...data.User) {
	t.Helper()
	for _, u := range users {
		if err := f.users.CreateUser(context.Background(), u); err != nil {
			t.Fatalf("CreateUser(%s): %v", u.ID, err)
		}
	}
}

// waitFor watches st until cond holds and returns the matching record.
func waitFor[S any](t *testing.T, st *State[S], cond func(S) bool) S {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for v := range st.Watch(ctx) {
		if cond(v) {
			return v
		}
	}
	t.Fatalf("condition not met, last state: %+v", st.Get())
	return st.Get()
}
