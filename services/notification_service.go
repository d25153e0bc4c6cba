package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/utils"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService records per-recipient alerts. Delivery is
// fire-and-forget: a failed write is logged and swallowed so message
// sending is never blocked by it.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify creates a notification for the recipient. Errors are logged, not
// returned.
func (s *NotificationService) Notify(recipientID, senderID, senderName, notifType, title, body, chatID string) {
	notif := models.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		SenderID:    senderID,
		SenderName:  senderName,
		Type:        notifType,
		Title:       title,
		Body:        body,
		ChatID:      chatID,
	}
	if err := s.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("notification for %s dropped: %v", recipientID, err)
	}
}

// MarkRead flips the read flag. Idempotent: marking an already-read
// notification again is a no-op success.
func (s *NotificationService) MarkRead(id string) error {
	var notif models.Notification
	if err := s.DB.First(&notif, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notif.Read {
		return nil
	}

	now := time.Now()
	return s.DB.Model(&notif).Updates(map[string]interface{}{
		"read":    true,
		"read_at": now,
	}).Error
}

// ListFor returns the recipient's notifications, newest first.
func (s *NotificationService) ListFor(recipientID string) ([]models.Notification, error) {
	var notifs []models.Notification
	err := s.DB.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifs).Error
	return notifs, err
}

// UnreadCount counts notifications still marked unread.
func (s *NotificationService) UnreadCount(recipientID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Where(map[string]interface{}{"read": false}).
		Count(&count).Error
	return count, err
}
