package repository

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/live"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ErrNoParticipants is returned when creating a chat with nobody in it.
var ErrNoParticipants = errors.New("chat needs at least one participant")

// DefaultJoinConcurrency bounds the profile lookups of one chat-list join.
const DefaultJoinConcurrency = 8

// ChatRepo implements ChatRepository on the chats collection.
type ChatRepo struct {
	docs        remote.Documents
	users       UserRepository
	concurrency int
	log         *slog.Logger
}

// NewChatRepo returns a ChatRepo. concurrency bounds the concurrent
// profile lookups per snapshot; zero or less means unbounded.
func NewChatRepo(docs remote.Documents, users UserRepository, concurrency int, log *slog.Logger) *ChatRepo {
	return &ChatRepo{docs: docs, users: users, concurrency: concurrency, log: log}
}

func (r *ChatRepo) ObserveChats(ctx context.Context, userID string, fn func([]data.Chat) error) error {
	q := remote.Collection(data.ChatsCollection).WhereArrayContains("participants", userID)

	return live.Query[data.Chat](r.docs, q).Run(ctx, func(chats []data.Chat) error {
		joined, err := r.join(ctx, chats)
		if err != nil {
			return err
		}
		return fn(joined)
	})
}

// join orders a snapshot by last-message time and attaches the current
// profile of every participant. Lookups that fail drop that participant
// from the details; the snapshot is returned only once every lookup is done.
func (r *ChatRepo) join(ctx context.Context, chats []data.Chat) ([]data.Chat, error) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageTime.After(chats[j].LastMessageTime)
	})

	ids := lo.Uniq(lo.FlatMap(chats, func(c data.Chat, _ int) []string {
		return c.Participants
	}))

	resolved := make([]*data.User, len(ids))
	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			u, err := r.users.GetUser(ctx, id)
			if err != nil {
				r.log.Debug("participant lookup failed", "user_id", id, "error", err)
				return nil
			}
			resolved[i] = u
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]data.User, len(ids))
	for _, u := range resolved {
		if u != nil {
			byID[u.ID] = *u
		}
	}
	for i := range chats {
		chats[i].ParticipantDetails = lo.FilterMap(chats[i].Participants, func(id string, _ int) (data.User, bool) {
			u, ok := byID[id]
			return u, ok
		})
	}
	return chats, nil
}

func (r *ChatRepo) GetChat(ctx context.Context, id string) (*data.Chat, error) {
	var c data.Chat
	if err := r.docs.Get(ctx, data.ChatsCollection, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepo) CreateChat(ctx context.Context, participants []string) (*data.Chat, error) {
	participants = lo.Uniq(participants)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	var existing []data.Chat
	q := remote.Collection(data.ChatsCollection).WhereArrayContains("participants", participants[0])
	if err := r.docs.Find(ctx, q, &existing); err != nil {
		return nil, err
	}
	for _, c := range existing {
		if sameMembers(c.Participants, participants) {
			return &c, nil
		}
	}

	now := time.Now()
	chat := data.Chat{
		Participants:    participants,
		LastMessageTime: now,
		CreatedAt:       now,
	}
	id, err := r.docs.Add(ctx, data.ChatsCollection, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = id
	return &chat, nil
}

func (r *ChatRepo) UpdateLastMessage(ctx context.Context, msg data.Message) error {
	return r.docs.Update(ctx, data.ChatsCollection, msg.ChatID, map[string]any{
		"lastMessage":       msg.Content,
		"lastMessageType":   msg.Type,
		"lastMessageTime":   msg.Timestamp,
		"lastMessageSender": msg.SenderID,
	})
}

func sameMembers(a, b []string) bool {
	left, right := lo.Difference(lo.Uniq(a), b)
	return len(left) == 0 && len(right) == 0
}
