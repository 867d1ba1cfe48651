package screen

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/normalize"
	"github.com/samber/lo"
)

// ChatListState holds the latest joined snapshot in Chats and the part of
// it that matches Query in Visible.
type ChatListState struct {
	UserID    string
	Chats     []data.Chat
	Visible   []data.Chat
	Query     string
	IsLoading bool
	Error     string
}

// ChatListScreen shows the live chat list of one user.
type ChatListScreen struct {
	state *State[ChatListState]
	scope *scope
	uc    *UseCases
	log   *slog.Logger

	mu   sync.Mutex
	stop context.CancelFunc
}

func newChatListScreen(ctx context.Context, uc *UseCases, userID string, log *slog.Logger) *ChatListScreen {
	s := &ChatListScreen{
		state: NewState(ChatListState{UserID: userID}),
		scope: newScope(ctx),
		uc:    uc,
		log:   log,
	}
	s.subscribe()
	return s
}

func (s *ChatListScreen) State() *State[ChatListState] { return s.state }

// Retry restarts the chat-list subscription, typically after it failed.
func (s *ChatListScreen) Retry() {
	s.subscribe()
}

// Search shows only chats whose partner's display name starts with query,
// ignoring case. A blank query shows every chat.
func (s *ChatListScreen) Search(query string) {
	s.state.Update(func(st ChatListState) ChatListState {
		st.Query = query
		st.Visible = visible(st.Chats, st.UserID, query)
		return st
	})
}

func (s *ChatListScreen) DismissError() {
	s.state.Update(func(st ChatListState) ChatListState {
		st.Error = ""
		return st
	})
}

// Close stops the subscription and any join in flight.
func (s *ChatListScreen) Close() { s.scope.close() }

func (s *ChatListScreen) subscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.stop()
	}

	s.state.Update(func(st ChatListState) ChatListState {
		st.IsLoading = true
		st.Error = ""
		return st
	})
	s.stop = s.scope.launch(s.run)
}

func (s *ChatListScreen) run(ctx context.Context) {
	userID := s.state.Get().UserID
	err := s.uc.GetChats.Execute(ctx, userID, func(chats []data.Chat) error {
		s.state.Update(func(st ChatListState) ChatListState {
			st.Chats = chats
			st.Visible = visible(chats, st.UserID, st.Query)
			st.IsLoading = false
			return st
		})
		return nil
	})

	msg := message(err)
	if msg == "" {
		return
	}
	s.log.Debug("chat list subscription ended", "user_id", userID, "error", err)
	s.state.Update(func(st ChatListState) ChatListState {
		st.IsLoading = false
		st.Error = msg
		return st
	})
}

func visible(chats []data.Chat, userID, query string) []data.Chat {
	if strings.TrimSpace(query) == "" {
		return chats
	}
	return lo.Filter(chats, func(c data.Chat, _ int) bool {
		partner, ok := c.Partner(userID)
		return ok && normalize.HasFoldPrefix(partner.DisplayName, query)
	})
}
