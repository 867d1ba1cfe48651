package screen

import (
	"context"

	"github.com/PaulBabatuyi/chatsync/internal/data"
)

// NewChatState carries the chat opened by StartChat in Chat.
type NewChatState struct {
	Query     string
	Results   []data.User
	IsLoading bool
	Error     string
	Chat      *data.Chat
}

// NewChatScreen finds a user and opens a chat with them.
type NewChatScreen struct {
	state *State[NewChatState]
	uc    *UseCases
	me    string
}

func newNewChatScreen(uc *UseCases, userID string) *NewChatScreen {
	return &NewChatScreen{
		state: NewState(NewChatState{Results: []data.User{}}),
		uc:    uc,
		me:    userID,
	}
}

func (s *NewChatScreen) State() *State[NewChatState] { return s.state }

func (s *NewChatScreen) Search(ctx context.Context, query string) error {
	s.state.Update(func(st NewChatState) NewChatState {
		st.Query = query
		st.IsLoading = true
		st.Error = ""
		return st
	})

	users, err := s.uc.SearchUsers.Execute(ctx, query)
	s.state.Update(func(st NewChatState) NewChatState {
		st.IsLoading = false
		if err != nil {
			st.Error = err.Error()
			return st
		}
		st.Results = users
		return st
	})
	return err
}

// StartChat opens the chat between the current user and partnerID,
// reusing an existing one.
func (s *NewChatScreen) StartChat(ctx context.Context, partnerID string) (*data.Chat, error) {
	s.state.Update(func(st NewChatState) NewChatState {
		st.IsLoading = true
		st.Error = ""
		return st
	})

	chat, err := s.uc.CreateChat.Execute(ctx, []string{s.me, partnerID})
	s.state.Update(func(st NewChatState) NewChatState {
		st.IsLoading = false
		if err != nil {
			st.Error = err.Error()
			return st
		}
		st.Chat = chat
		return st
	})
	return chat, err
}

func (s *NewChatScreen) DismissError() {
	s.state.Update(func(st NewChatState) NewChatState {
		st.Error = ""
		return st
	})
}
