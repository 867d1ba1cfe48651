package screen

import (
	"context"
	"log/slog"

	"github.com/PaulBabatuyi/chatsync/internal/data"
)

// ChatState is the state of one conversation. Partner stays nil until the
// partner's profile has been read.
type ChatState struct {
	ChatID    string
	UserID    string
	Messages  []data.Message
	PartnerID string
	Partner   *data.User
	Draft     string
	IsSending bool
	Error     string
}

// ChatScreen shows one conversation with live messages and the partner's
// presence.
type ChatScreen struct {
	state *State[ChatState]
	scope *scope
	uc    *UseCases
	me    data.User
	log   *slog.Logger
}

func newChatScreen(ctx context.Context, uc *UseCases, chatID string, me data.User, log *slog.Logger) *ChatScreen {
	s := &ChatScreen{
		state: NewState(ChatState{ChatID: chatID, UserID: me.ID}),
		scope: newScope(ctx),
		uc:    uc,
		me:    me,
		log:   log,
	}
	s.scope.launch(s.observeMessages)
	s.scope.launch(s.observePartner)
	return s
}

func (s *ChatScreen) State() *State[ChatState] { return s.state }

func (s *ChatScreen) observeMessages(ctx context.Context) {
	err := s.uc.GetMessages.Execute(ctx, s.state.Get().ChatID, func(msgs []data.Message) error {
		s.state.Update(func(st ChatState) ChatState {
			st.Messages = msgs
			return st
		})
		return nil
	})
	s.fail("message subscription ended", err)
}

func (s *ChatScreen) observePartner(ctx context.Context) {
	chat, err := s.uc.GetChat.Execute(ctx, s.state.Get().ChatID)
	if err != nil {
		s.fail("chat lookup failed", err)
		return
	}
	partnerID := chat.PartnerID(s.me.ID)
	if partnerID == "" {
		return
	}
	s.state.Update(func(st ChatState) ChatState {
		st.PartnerID = partnerID
		return st
	})

	err = s.uc.ObserveUser.Execute(ctx, partnerID, func(u *data.User) error {
		s.state.Update(func(st ChatState) ChatState {
			st.Partner = u
			return st
		})
		return nil
	})
	s.fail("presence subscription ended", err)
}

func (s *ChatScreen) SetDraft(text string) {
	s.state.Update(func(st ChatState) ChatState {
		st.Draft = text
		return st
	})
}

// Send sends the current draft. The draft is cleared only once the message
// has been stored.
func (s *ChatScreen) Send(ctx context.Context) error {
	st := s.state.Update(func(st ChatState) ChatState {
		st.IsSending = true
		st.Error = ""
		return st
	})

	msg := data.Message{
		ChatID:       st.ChatID,
		SenderID:     s.me.ID,
		ReceiverID:   st.PartnerID,
		Content:      st.Draft,
		SenderName:   s.me.DisplayName,
		SenderAvatar: s.me.AvatarURL,
	}

	_, err := s.uc.SendMessage.Execute(ctx, msg)
	s.state.Update(func(st ChatState) ChatState {
		st.IsSending = false
		if err != nil {
			st.Error = err.Error()
			return st
		}
		st.Draft = ""
		return st
	})
	return err
}

func (s *ChatScreen) DismissError() {
	s.state.Update(func(st ChatState) ChatState {
		st.Error = ""
		return st
	})
}

// Close stops both subscriptions.
func (s *ChatScreen) Close() { s.scope.close() }

func (s *ChatScreen) fail(what string, err error) {
	msg := message(err)
	if msg == "" {
		return
	}
	s.log.Debug(what, "chat_id", s.state.Get().ChatID, "error", err)
	s.state.Update(func(st ChatState) ChatState {
		st.Error = msg
		return st
	})
}
