package model

import "time"

const (
	EntityName = "conversation"

	StoreKeyConversations = "chat_conversations"

	SupportConversationID    = "support"
	SupportConversationTitle = "PawStay Support"
)

type Sender string

const (
	SenderUser   Sender = "user"
	SenderAdmin  Sender = "admin"
	SenderSystem Sender = "system"
)

type MessageType string

const (
	MessageTypeText          MessageType = "text"
	MessageTypeImage         MessageType = "image"
	MessageTypeBookingUpdate MessageType = "bookingUpdate"
	MessageTypeSystemNotice  MessageType = "systemNotice"
)

type ChatMessage struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Sender    Sender      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	IsRead    bool        `json:"isRead"`
	Type      MessageType `json:"type"`
}

type Conversation struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Messages     []ChatMessage `json:"messages"`
	UnreadCount  int           `json:"unreadCount"`
	LastActivity time.Time     `json:"lastActivity"`
}

// Recount sets UnreadCount from the unread messages not sent by the user.
func (c *Conversation) Recount() {
	unread := 0

	for _, m := range c.Messages {
		if !m.IsRead && m.Sender != SenderUser {
			unread++
		}
	}

	c.UnreadCount = unread
}

// Append adds message at the tail and keeps UnreadCount and LastActivity in step.
func (c *Conversation) Append(message ChatMessage) {
	c.Messages = append(c.Messages, message)
	c.LastActivity = message.Timestamp
	c.Recount()
}

func (c *Conversation) MarkAllRead() {
	for i := range c.Messages {
		c.Messages[i].IsRead = true
	}

	c.UnreadCount = 0
}
