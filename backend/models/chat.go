package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat is the per-user chat history document; the messages themselves live
// in chat_messages as insert-only rows so concurrent appends cannot lose
// each other.
type Chat struct {
	UserID      string    `gorm:"primaryKey" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (Chat) TableName() string { return "chats" }

// Message is a single chat history entry. Ordering is insertion order; no
// message is ever removed individually.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"index;not null" json:"-"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (Message) TableName() string { return "chat_messages" }
