package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

var (
	ErrInvalidParticipants = errors.New("a chat needs two distinct participant ids")
	ErrChatNotFound        = errors.New("chat not found")
	ErrEmptyMessage        = errors.New("message text must not be empty")
	ErrNotParticipant      = errors.New("sender is not a participant of this chat")
)

// ChatService implements the two-party chat session protocol: canonical
// ids, lazy idempotent creation, message append and ordering, cascade
// delete.
type ChatService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewChatService(db *gorm.DB, notifications *NotificationService) *ChatService {
	return &ChatService{DB: db, Notifications: notifications}
}

// ChatID derives the canonical conversation id for a pair of users:
// participant ids sorted lexicographically, joined with "_". Both parties
// compute the same id, so duplicate conversations cannot exist.
func ChatID(a, b string) (string, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" || a == b {
		return "", ErrInvalidParticipants
	}
	if a > b {
		a, b = b, a
	}
	return a + "_" + b, nil
}

// GetOrCreate returns the chat for the pair, creating it on first contact.
// Safe under concurrent calls from both participants: the id is the
// primary key, so the losing creator re-reads the winner's record and
// nothing is overwritten.
func (s *ChatService) GetOrCreate(selfID, partnerID string) (*models.Chat, error) {
	id, err := ChatID(selfID, partnerID)
	if err != nil {
		return nil, err
	}

	var chat models.Chat
	if err := s.DB.First(&chat, "id = ?", id).Error; err == nil {
		return &chat, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a, b := selfID, partnerID
	if a > b {
		a, b = b, a
	}
	chat = models.Chat{ID: id, ParticipantA: a, ParticipantB: b}
	if err := s.DB.Create(&chat).Error; err != nil {
		// Lost the race with the other participant; their record wins.
		var existing models.Chat
		if ferr := s.DB.First(&existing, "id = ?", id).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &chat, nil
}

// SendMessage appends a message, merge-updates the chat summary fields and
// fires a best-effort notification at the other participant. A failed
// notification never rolls back the message.
func (s *ChatService) SendMessage(chatID, senderID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	var chat models.Chat
	if err := s.DB.First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if senderID != chat.ParticipantA && senderID != chat.ParticipantB {
		return nil, ErrNotParticipant
	}

	// v7 ids are time-ordered, so the id tie-break in Messages keeps
	// insertion order even when two sends land on the same timestamp.
	msgID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	msg := models.Message{
		ID:       msgID.String(),
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		return nil, err
	}

	// Merge, never a full-record save: a concurrent pin by the other
	// participant must survive this update.
	now := time.Now()
	if err := s.DB.Model(&models.Chat{}).Where("id = ?", chatID).Updates(map[string]interface{}{
		"last_message":    text,
		"last_message_at": now,
		"last_sender_id":  senderID,
	}).Error; err != nil {
		utils.ErrorLogger.Printf("chat %s: summary update failed: %v", chatID, err)
	}

	recipient := chat.ParticipantA
	if recipient == senderID {
		recipient = chat.ParticipantB
	}
	s.Notifications.Notify(recipient, senderID, s.senderName(senderID),
		models.NotificationTypeMessage, "New message", text, chatID)

	return &msg, nil
}

// Messages returns the chat's messages ordered by creation time ascending.
// The id tie-break is meaningful because ids are time-ordered v7 uuids:
// same-timestamp messages come back in the order they were written.
func (s *ChatService) Messages(chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

// SortMessages re-sorts a batch by creation time ascending. Messages with
// a zero timestamp (written locally, server time not yet assigned) sort
// last; equal timestamps keep their relative order.
func SortMessages(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		ti, tj := msgs[i].CreatedAt, msgs[j].CreatedAt
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.Before(tj)
	})
}

// ChatsFor lists the user's chats, most recent activity first.
func (s *ChatService) ChatsFor(userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("pinned DESC").
		Order("last_message_at DESC").
		Find(&chats).Error
	return chats, err
}

// Delete removes the chat and all its messages in one transaction.
// Partial failure rolls everything back.
func (s *ChatService) Delete(chatID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var chat models.Chat
		if err := tx.First(&chat, "id = ?", chatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChatNotFound
			}
			return err
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&chat).Error
	})
}

// SetPinned flips only the pin flag.
func (s *ChatService) SetPinned(chatID string, pinned bool) error {
	res := s.DB.Model(&models.Chat{}).Where("id = ?", chatID).Update("pinned", pinned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// IsParticipant reports whether the user belongs to the chat.
func (s *ChatService) IsParticipant(chatID, userID string) (bool, error) {
	var chat models.Chat
	if err := s.DB.First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrChatNotFound
		}
		return false, err
	}
	return userID == chat.ParticipantA || userID == chat.ParticipantB, nil
}

// senderName resolves a display name for notifications; falls back to the
// raw id so a profile-fetch failure never blocks delivery.
func (s *ChatService) senderName(userID string) string {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err == nil && user.Name != "" {
		return user.Name
	}
	return userID
}
