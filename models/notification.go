package models

import "time"

const NotificationTypeMessage = "message"

type Notification struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	RecipientID string     `gorm:"type:char(36);not null;index" json:"recipient_id"`
	SenderID    string     `gorm:"type:char(36);not null" json:"sender_id"`
	SenderName  string     `gorm:"type:varchar(255)" json:"sender_name"`
	Type        string     `gorm:"type:varchar(32);not null;default:'message'" json:"type"`
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	ChatID      string     `gorm:"type:varchar(128)" json:"chat_id,omitempty"`
	Read        bool       `gorm:"default:false;index" json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}
