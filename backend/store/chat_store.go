package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"edugpt/backend/models"
)

// ChatStore is the data-access boundary for the chats collection. Appends
// are row inserts, so two concurrent requests may interleave their message
// pairs but can never lose each other's.
type ChatStore struct {
	DB *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{DB: db}
}

// Append adds messages to the user's history in insertion order and stamps
// lastUpdated, creating the chat document on first use.
func (s *ChatStore) Append(userID string, messages ...models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := touchChat(tx, userID, now); err != nil {
			return err
		}
		for i := range messages {
			messages[i].UserID = userID
			if messages[i].Timestamp.IsZero() {
				messages[i].Timestamp = now
			}
		}
		return tx.Create(&messages).Error
	})
}

// History returns the stored messages in insertion order; an absent chat
// document reads as an empty history.
func (s *ChatStore) History(userID string) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.DB.Where("user_id = ?", userID).Order("id").Find(&messages).Error
	return messages, err
}

// Count returns the number of stored messages for the user.
func (s *ChatStore) Count(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Clear removes every message and stamps lastUpdated.
func (s *ChatStore) Clear(userID string) error {
	now := time.Now().UTC()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return touchChat(tx, userID, now)
	})
}

func touchChat(tx *gorm.DB, userID string, now time.Time) error {
	var chat models.Chat
	err := tx.First(&chat, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.Chat{UserID: userID, CreatedAt: now, LastUpdated: now}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&chat).Update("last_updated", now).Error
}
