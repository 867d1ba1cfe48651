package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/live"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

// MessageRepo implements MessageRepository on the messages collection.
type MessageRepo struct {
	docs  remote.Documents
	chats ChatRepository
}

// NewMessageRepo returns a MessageRepo that keeps chats' last-message
// summaries up to date through chats.
func NewMessageRepo(docs remote.Documents, chats ChatRepository) *MessageRepo {
	return &MessageRepo{docs: docs, chats: chats}
}

func (r *MessageRepo) ObserveMessages(ctx context.Context, chatID string, fn func([]data.Message) error) error {
	q := remote.Collection(data.MessagesCollection).
		Where("chatId", chatID).
		OrderBy("timestamp", false)
	return live.Query[data.Message](r.docs, q).Run(ctx, fn)
}

func (r *MessageRepo) SendMessage(ctx context.Context, msg data.Message) (*data.Message, error) {
	if msg.Type == "" {
		msg.Type = data.MessageTypeText
	}
	msg.Status = data.MessageStatusSent
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	msg.ID = ""

	id, err := r.docs.Add(ctx, data.MessagesCollection, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	if err := r.chats.UpdateLastMessage(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepo) UpdateMessageStatus(ctx context.Context, chatID, id string, status data.MessageStatus) error {
	if err := r.checkOwner(ctx, chatID, id); err != nil {
		return err
	}
	return r.docs.Update(ctx, data.MessagesCollection, id, map[string]any{"status": status})
}

func (r *MessageRepo) DeleteMessage(ctx context.Context, chatID, id string) error {
	if err := r.checkOwner(ctx, chatID, id); err != nil {
		return err
	}
	return r.docs.Delete(ctx, data.MessagesCollection, id)
}

// checkOwner fails with remote.ErrNotFound unless message id belongs to chatID.
func (r *MessageRepo) checkOwner(ctx context.Context, chatID, id string) error {
	var m data.Message
	if err := r.docs.Get(ctx, data.MessagesCollection, id, &m); err != nil {
		return err
	}
	if m.ChatID != chatID {
		return fmt.Errorf("%s/%s in chat %s: %w", data.MessagesCollection, id, chatID, remote.ErrNotFound)
	}
	return nil
}
