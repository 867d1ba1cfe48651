package data

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Collection names on the backend.
const (
	UsersCollection    = "users"
	ChatsCollection    = "chats"
	MessagesCollection = "messages"
	AccountsCollection = "accounts"
)

// MessageType is the kind of content a message carries.
type MessageType string

const (
	MessageTypeText      MessageType = "TEXT"
	MessageTypeImage     MessageType = "IMAGE"
	MessageTypeVideo     MessageType = "VIDEO"
	MessageTypeAudio     MessageType = "AUDIO"
	MessageTypeEmoji     MessageType = "EMOJI"
	MessageTypePhoto     MessageType = "PHOTO"
	MessageTypeThread    MessageType = "THREAD"
	MessageTypeVoiceCall MessageType = "VOICE_CALL"
	MessageTypeVideoCall MessageType = "VIDEO_CALL"
)

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "SENT"
	MessageStatusDelivered MessageStatus = "DELIVERED"
	MessageStatusRead      MessageStatus = "READ"
)

// User maps to the users collection. The document id is the auth user id.
type User struct {
	ID          string    `bson:"_id"`
	Email       string    `bson:"email"`
	DisplayName string    `bson:"displayName"`
	AvatarURL   string    `bson:"avatarUrl"`
	IsOnline    bool      `bson:"isOnline"`
	LastSeen    time.Time `bson:"lastSeen"`
}

// Initials returns the upper-cased first letters of up to two
// space-separated tokens of the display name.
func (u User) Initials() string {
	tokens := strings.Fields(u.DisplayName)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	var b strings.Builder
	for _, token := range tokens {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Chat maps to the chats collection. ParticipantDetails is joined in at
// read time and never written back.
type Chat struct {
	ID                 string      `bson:"_id,omitempty"`
	Participants       []string    `bson:"participants"`
	ParticipantDetails []User      `bson:"-"`
	LastMessage        string      `bson:"lastMessage"`
	LastMessageType    MessageType `bson:"lastMessageType"`
	LastMessageTime    time.Time   `bson:"lastMessageTime"`
	LastMessageSender  string      `bson:"lastMessageSender"`
	UnreadCount        int         `bson:"-"`
	CreatedAt          time.Time   `bson:"createdAt"`
}

// PartnerID returns the first participant that is not currentUserID, or
// an empty string for a chat with oneself.
func (c Chat) PartnerID(currentUserID string) string {
	for _, id := range c.Participants {
		if id != currentUserID {
			return id
		}
	}
	return ""
}

// Partner returns the resolved detail of the chat partner, if the join
// produced one.
func (c Chat) Partner(currentUserID string) (User, bool) {
	id := c.PartnerID(currentUserID)
	for _, u := range c.ParticipantDetails {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// HasParticipant reports whether userID is a member of the chat.
func (c Chat) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Message maps to the messages collection, scoped by ChatID.
type Message struct {
	ID           string        `bson:"_id,omitempty"`
	ChatID       string        `bson:"chatId"`
	SenderID     string        `bson:"senderId"`
	ReceiverID   string        `bson:"receiverId"`
	Content      string        `bson:"content"`
	Type         MessageType   `bson:"type"`
	Status       MessageStatus `bson:"status"`
	Timestamp    time.Time     `bson:"timestamp"`
	SenderName   string        `bson:"senderName"`
	SenderAvatar string        `bson:"senderAvatar"`
}

// Account maps to the accounts collection owned by the auth service.
type Account struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	DisplayName  string    `bson:"displayName"`
	AvatarURL    string    `bson:"avatarUrl"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}
